package httpadapter

import (
	"net/http"
)

func (h *Handler) handleCreateAd(w http.ResponseWriter, r *http.Request) {
	var req createAdRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.svc.CreateAd(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newAdView(*a))
}

func (h *Handler) handleListAds(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetAds(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapSlice(list, newAdView))
}

func (h *Handler) handleGetAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.svc.GetAdByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if a == nil {
		h.writeNotFound(w, "ad", id)
		return
	}
	h.writeJSON(w, http.StatusOK, newAdView(*a))
}

func (h *Handler) handleUpdateAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req updateAdRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.svc.UpdateAd(r.Context(), req.input(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if a == nil {
		h.writeNotFound(w, "ad", id)
		return
	}
	h.writeJSON(w, http.StatusOK, newAdView(*a))
}

func (h *Handler) handleDeleteAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	deleted, err := h.svc.DeleteAd(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted})
}
