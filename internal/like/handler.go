package like

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/pagination"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/like/toggle/v/{videoId}", h.toggle(dbmongo.LikeTargetVideo, "videoId")).Methods(http.MethodPost)
	r.HandleFunc("/like/toggle/c/{commentId}", h.toggle(dbmongo.LikeTargetComment, "commentId")).Methods(http.MethodPost)
	r.HandleFunc("/like/toggle/t/{tweetId}", h.toggle(dbmongo.LikeTargetTweet, "tweetId")).Methods(http.MethodPost)
	r.HandleFunc("/like/videos", h.LikedVideos).Methods(http.MethodGet)
	r.HandleFunc("/like/videos/{userId}", h.LikedVideos).Methods(http.MethodGet)
}

func (h *Handler) toggle(target dbmongo.LikeTarget, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := common.RequirePrincipal(r.Context())
		if err != nil {
			common.WriteError(w, err)
			return
		}
		id, err := common.ParseObjectID(mux.Vars(r)[param], string(target))
		if err != nil {
			common.WriteError(w, err)
			return
		}
		res, err := h.svc.Toggle(r.Context(), p.UserID, target, id)
		if err != nil {
			common.WriteError(w, err)
			return
		}
		message := "Like added successfully"
		if res.Action == Unliked {
			message = "Like removed successfully"
		}
		common.WriteSuccess(w, http.StatusOK, res, message)
	}
}

// LikedVideos lists the videos a user liked; without a userId in the path it
// lists the caller's.
func (h *Handler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	userID := p.UserID
	if raw, ok := mux.Vars(r)["userId"]; ok {
		if userID, err = common.ParseObjectID(raw, "user"); err != nil {
			common.WriteError(w, err)
			return
		}
	}
	page, err := h.svc.LikedVideos(r.Context(), p.UserID, userID, pagination.ParsePageRequest(r.URL.Query(), Sortable))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, page, "Liked videos fetched successfully")
}
