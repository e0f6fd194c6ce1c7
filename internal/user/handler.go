package user

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/common"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the channel profile route. It expects optional
// authentication: anonymous viewers get isSubscribed=false.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/users/c/{username}", h.ChannelProfile).Methods(http.MethodGet)
}

func (h *Handler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := common.PrincipalFrom(r.Context())
	profile, err := h.svc.ChannelProfile(r.Context(), p.UserID, mux.Vars(r)["username"])
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, profile, "User channel fetched successfully")
}
