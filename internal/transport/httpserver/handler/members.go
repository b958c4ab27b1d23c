package handler

import (
	"errors"
	"net/http"
	"time"

	memberdomain "gold-day-go/internal/domain/member"
	"github.com/go-chi/chi/v5"
)

type memberNameRequest struct {
	Name string `json:"name"`
}

type memberResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toMemberResponse(m *memberdomain.Member) memberResponse {
	return memberResponse{
		ID:        m.ID,
		GroupID:   m.GroupID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	members, err := h.Members.List(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, memberdomain.ErrGroupNotFound) {
			h.log.BusinessError("members.list: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("members.list: list failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]memberResponse, 0, len(members))
	for i := range members {
		response = append(response, toMemberResponse(&members[i]))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	var req memberNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Members.Add(r.Context(), groupID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrInvalidName):
			h.log.BusinessError("members.add: invalid name", err, "group_id", groupID)
			writeError(w, http.StatusBadRequest, "invalid_name", "member name must be 1-50 characters")
		case errors.Is(err, memberdomain.ErrGroupNotFound):
			h.log.BusinessError("members.add: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, memberdomain.ErrNameTaken):
			h.log.BusinessError("members.add: name taken", err, "group_id", groupID)
			writeError(w, http.StatusConflict, "name_taken", "a member with this name already exists")
		default:
			h.log.InternalError("members.add: add failed", err, "group_id", groupID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(result))
}

func (h *Handlers) RenameMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "member_id")

	var req memberNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Members.Rename(r.Context(), memberID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrInvalidName):
			h.log.BusinessError("members.rename: invalid name", err, "member_id", memberID)
			writeError(w, http.StatusBadRequest, "invalid_name", "member name must be 1-50 characters")
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			h.log.BusinessError("members.rename: not found", err, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, memberdomain.ErrNameTaken):
			h.log.BusinessError("members.rename: name taken", err, "member_id", memberID)
			writeError(w, http.StatusConflict, "name_taken", "a member with this name already exists")
		default:
			h.log.InternalError("members.rename: rename failed", err, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(result))
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "member_id")

	if err := h.Members.Remove(r.Context(), memberID); err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			h.log.BusinessError("members.remove: not found", err, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.remove: remove failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
