package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	assignmentdomain "gold-day-go/internal/domain/assignment"
	"github.com/go-chi/chi/v5"
)

type redrawRequest struct {
	Seed *int64 `json:"seed"`
}

type manualDrawEntry struct {
	MemberName string `json:"member_name"`
	Month      int    `json:"month"`
}

type manualDrawRequest struct {
	Entries []manualDrawEntry `json:"entries"`
}

type setPaymentRequest struct {
	Paid bool `json:"paid"`
}

type setDeliveryDateRequest struct {
	Date *string `json:"date"`
}

type pruneRequest struct {
	BeforeYear int `json:"before_year"`
}

func (h *Handlers) Redraw(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	// The body is optional; a bare POST draws with system randomness.
	var req redrawRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	views, err := h.Assignments.Redraw(r.Context(), groupID, req.Seed)
	if err != nil {
		h.writeDrawError(w, "assignments.redraw", groupID, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) ManualDraw(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	var req manualDrawRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	entries := make([]assignmentdomain.ManualEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, assignmentdomain.ManualEntry{
			MemberName: entry.MemberName,
			Month:      entry.Month,
		})
	}

	views, err := h.Assignments.ApplyManualDraw(r.Context(), groupID, entries)
	if err != nil {
		if errors.Is(err, assignmentdomain.ErrInvalidMonth) {
			h.log.BusinessError("assignments.manual_draw: invalid month", err, "group_id", groupID)
			writeError(w, http.StatusBadRequest, "invalid_month", "month must be between 1 and 12")
			return
		}
		h.writeDrawError(w, "assignments.manual_draw", groupID, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) ListAssignments(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	views, err := h.Assignments.List(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, assignmentdomain.ErrGroupNotFound) {
			h.log.BusinessError("assignments.list: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("assignments.list: list failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) SetPayment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "assignment_id")
	memberID := chi.URLParam(r, "member_id")

	var req setPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	err := h.Assignments.SetPayment(r.Context(), assignmentID, memberID, req.Paid)
	if err != nil {
		switch {
		case errors.Is(err, assignmentdomain.ErrAssignmentNotFound):
			h.log.BusinessError("payments.set: assignment not found", err, "assignment_id", assignmentID)
			writeError(w, http.StatusNotFound, "assignment_not_found", "assignment not found")
		case errors.Is(err, assignmentdomain.ErrMemberNotFound):
			h.log.BusinessError("payments.set: member not found", err, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, assignmentdomain.ErrCrossGroupReference):
			h.log.BusinessError("payments.set: cross-group reference", err, "assignment_id", assignmentID, "member_id", memberID)
			writeError(w, http.StatusConflict, "cross_group_reference", "member and assignment belong to different groups")
		default:
			h.log.InternalError("payments.set: update failed", err, "assignment_id", assignmentID, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ResetPayments(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	if err := h.Assignments.ResetPayments(r.Context(), groupID); err != nil {
		if errors.Is(err, assignmentdomain.ErrGroupNotFound) {
			h.log.BusinessError("payments.reset: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("payments.reset: reset failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) SetDeliveryDate(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "assignment_id")

	var req setDeliveryDateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	if err := h.Assignments.SetPreferredDeliveryDate(r.Context(), assignmentID, date); err != nil {
		if errors.Is(err, assignmentdomain.ErrAssignmentNotFound) {
			h.log.BusinessError("assignments.delivery_date: not found", err, "assignment_id", assignmentID)
			writeError(w, http.StatusNotFound, "assignment_not_found", "assignment not found")
			return
		}
		h.log.InternalError("assignments.delivery_date: update failed", err, "assignment_id", assignmentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) PruneAssignments(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	var req pruneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.BeforeYear <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_year", "before_year is required")
		return
	}

	deleted, err := h.Assignments.PruneBefore(r.Context(), groupID, req.BeforeYear)
	if err != nil {
		if errors.Is(err, assignmentdomain.ErrGroupNotFound) {
			h.log.BusinessError("assignments.prune: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("assignments.prune: prune failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted_count": deleted})
}

func (h *Handlers) writeDrawError(w http.ResponseWriter, op, groupID string, err error) {
	switch {
	case errors.Is(err, assignmentdomain.ErrGroupNotFound):
		h.log.BusinessError(op+": group not found", err, "group_id", groupID)
		writeError(w, http.StatusNotFound, "group_not_found", "group not found")
	case errors.Is(err, assignmentdomain.ErrNoMembers):
		h.log.BusinessError(op+": no members", err, "group_id", groupID)
		writeError(w, http.StatusConflict, "no_members", "add members before drawing the rotation")
	default:
		h.log.InternalError(op+": draw failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
