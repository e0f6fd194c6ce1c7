package dashboard

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/common"
	"vidtube/internal/pagination"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/dashboard/stats/{channelId}", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/videos/{channelId}", h.ChannelVideos).Methods(http.MethodGet)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	channel, err := common.ParseObjectID(mux.Vars(r)["channelId"], "channel")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	stats, err := h.svc.Stats(r.Context(), channel)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *Handler) ChannelVideos(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	channel, err := common.ParseObjectID(mux.Vars(r)["channelId"], "channel")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	page, err := h.svc.ChannelVideos(r.Context(), p.UserID, channel, pagination.ParsePageRequest(r.URL.Query(), Sortable))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, page, "Channel videos fetched successfully")
}
