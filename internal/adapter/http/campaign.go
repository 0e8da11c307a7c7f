package httpadapter

import (
	"net/http"
)

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newCampaignView(*c))
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetCampaigns(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapSlice(list, newCampaignView))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.GetCampaignByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if c == nil {
		h.writeNotFound(w, "campaign", id)
		return
	}
	h.writeJSON(w, http.StatusOK, newCampaignView(*c))
}

// handleUpdateCampaign applies a partial update. Fields left out of the body
// keep their stored value.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req updateCampaignRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.UpdateCampaign(r.Context(), req.input(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if c == nil {
		h.writeNotFound(w, "campaign", id)
		return
	}
	h.writeJSON(w, http.StatusOK, newCampaignView(*c))
}

// handleDeleteCampaign hard-deletes a campaign. A campaign that still has ad
// sets is refused with 422.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	deleted, err := h.svc.DeleteCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted})
}

func (h *Handler) handleListAdSetsByCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.svc.GetAdSetsByCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapSlice(list, newAdSetView))
}
