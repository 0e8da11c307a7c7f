package httpadapter

import (
	"net/http"
)

func (h *Handler) handleCreateAdSet(w http.ResponseWriter, r *http.Request) {
	var req createAdSetRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.svc.CreateAdSet(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newAdSetView(*s))
}

func (h *Handler) handleListAdSets(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetAdSets(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapSlice(list, newAdSetView))
}

func (h *Handler) handleGetAdSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.svc.GetAdSetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if s == nil {
		h.writeNotFound(w, "ad set", id)
		return
	}
	h.writeJSON(w, http.StatusOK, newAdSetView(*s))
}

// handleUpdateAdSet applies a partial update. A body without any field is
// answered with 404, the same as an unknown id.
func (h *Handler) handleUpdateAdSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req updateAdSetRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.svc.UpdateAdSet(r.Context(), req.input(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if s == nil {
		h.writeNotFound(w, "ad set", id)
		return
	}
	h.writeJSON(w, http.StatusOK, newAdSetView(*s))
}

// handleDeleteAdSet soft-deletes the ad set together with its ads.
func (h *Handler) handleDeleteAdSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	deleted, err := h.svc.DeleteAdSet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted})
}

func (h *Handler) handleListAdsByAdSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.svc.GetAdsByAdSet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapSlice(list, newAdView))
}
