package handler

import (
	"errors"
	"net/http"
	"time"

	groupdomain "gold-day-go/internal/domain/group"
	"github.com/go-chi/chi/v5"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type setRotationDrawnRequest struct {
	Drawn bool `json:"drawn"`
}

type groupResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ShareCode     *string   `json:"share_code"`
	IsDefault     bool      `json:"is_default"`
	RotationDrawn bool      `json:"rotation_drawn"`
	CreatedAt     time.Time `json:"created_at"`
}

type groupSummaryResponse struct {
	groupResponse
	MemberCount     int64 `json:"member_count"`
	AssignmentCount int64 `json:"assignment_count"`
}

func toGroupResponse(g *groupdomain.Group) groupResponse {
	return groupResponse{
		ID:            g.ID,
		Name:          g.Name,
		ShareCode:     g.ShareCode,
		IsDefault:     g.IsDefault,
		RotationDrawn: g.RotationDrawn,
		CreatedAt:     g.CreatedAt,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Groups.Create(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, groupdomain.ErrInvalidName):
			h.log.BusinessError("groups.create: invalid name", err)
			writeError(w, http.StatusBadRequest, "invalid_name", "group name must be 1-100 characters")
		case errors.Is(err, groupdomain.ErrCodeGeneration):
			h.log.InternalError("groups.create: share code generation failed", err)
			writeError(w, http.StatusConflict, "code_generation_failed", "could not generate a share code, try again")
		default:
			h.log.InternalError("groups.create: create failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(result))
}

func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Groups.List(r.Context())
	if err != nil {
		h.log.InternalError("groups.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]groupSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, groupSummaryResponse{
			groupResponse:   toGroupResponse(&summary.Group),
			MemberCount:     summary.MemberCount,
			AssignmentCount: summary.AssignmentCount,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetDefaultGroup(w http.ResponseWriter, r *http.Request) {
	result, err := h.Groups.EnsureDefault(r.Context())
	if err != nil {
		h.log.InternalError("groups.default: ensure failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(result))
}

func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	result, err := h.Groups.GetByID(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, groupdomain.ErrGroupNotFound) {
			h.log.BusinessError("groups.get: not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("groups.get: get failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(result))
}

func (h *Handlers) GetGroupByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	result, err := h.Groups.GetByShareCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, groupdomain.ErrGroupNotFound) {
			h.log.BusinessError("groups.by_code: not found", err, "code", code)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("groups.by_code: get failed", err, "code", code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(result))
}

func (h *Handlers) SetRotationDrawn(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	var req setRotationDrawnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if err := h.Groups.SetRotationDrawn(r.Context(), groupID, req.Drawn); err != nil {
		if errors.Is(err, groupdomain.ErrGroupNotFound) {
			h.log.BusinessError("groups.set_rotation_drawn: not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("groups.set_rotation_drawn: update failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
