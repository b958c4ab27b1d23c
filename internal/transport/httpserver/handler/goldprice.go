package handler

import (
	"net/http"
)

func (h *Handlers) GetGoldPrice(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.GoldPrice.GetPrice(r.Context()))
}

func (h *Handlers) RefreshGoldPrice(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.GoldPrice.ForceRefresh(r.Context())
	if err != nil {
		h.log.InternalError("goldprice.refresh: fetch failed", err)
		writeError(w, http.StatusBadGateway, "fetch_failed", "could not fetch a live gold price")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
