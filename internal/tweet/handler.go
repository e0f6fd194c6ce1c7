package tweet

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
	r.HandleFunc("/tweet/create-tweet", h.CreateTweet).Methods(http.MethodPost)
	r.HandleFunc("/tweet/update-tweet/{tweetId}", h.UpdateTweet).Methods(http.MethodPatch)
	r.HandleFunc("/tweet/delete-tweet/{tweetId}", h.DeleteTweet).Methods(http.MethodDelete)
	r.HandleFunc("/tweet/{userId}", h.UserTweets).Methods(http.MethodGet)
}

type contentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) CreateTweet(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req contentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	t, err := h.svc.CreateTweet(r.Context(), p.UserID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusCreated, t, "Tweet created successfully")
}

func (h *Handler) UserTweets(w http.ResponseWriter, r *http.Request) {
	userID, err := common.ParseObjectID(mux.Vars(r)["userId"], "user")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	page, err := h.svc.UserTweets(r.Context(), userID, pagination.ParsePageRequest(r.URL.Query(), Sortable))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, page, "Tweets fetched successfully")
}

func (h *Handler) UpdateTweet(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	tweetID, err := common.ParseObjectID(mux.Vars(r)["tweetId"], "tweet")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req contentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	t, err := h.svc.UpdateTweet(r.Context(), p.UserID, tweetID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, t, "Tweet updated successfully")
}

func (h *Handler) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	tweetID, err := common.ParseObjectID(mux.Vars(r)["tweetId"], "tweet")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.svc.DeleteTweet(r.Context(), p.UserID, tweetID); err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, map[string]string{"tweetId": tweetID.Hex()}, "Tweet deleted successfully")
}
