package subscription

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
	r.HandleFunc("/subscription/c/{channelId}", h.Toggle).Methods(http.MethodPost)
	r.HandleFunc("/subscription/c/{channelId}", h.Subscribers).Methods(http.MethodGet)
	r.HandleFunc("/subscription/u/{subscriberId}", h.Channels).Methods(http.MethodGet)
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.svc.Toggle(r.Context(), p.UserID, channel)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	message := "Subscribed successfully"
	if res.Action == Unsubscribed {
		message = "Unsubscribed successfully"
	}
	common.WriteSuccess(w, http.StatusOK, res, message)
}

func (h *Handler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channel, err := common.ParseObjectID(mux.Vars(r)["channelId"], "channel")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	page, err := h.svc.Subscribers(r.Context(), channel, pagination.ParsePageRequest(r.URL.Query(), Sortable))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, page, "Subscribers fetched successfully")
}

func (h *Handler) Channels(w http.ResponseWriter, r *http.Request) {
	subscriber, err := common.ParseObjectID(mux.Vars(r)["subscriberId"], "subscriber")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	page, err := h.svc.Channels(r.Context(), subscriber, pagination.ParsePageRequest(r.URL.Query(), Sortable))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, page, "Subscribed channels fetched successfully")
}
