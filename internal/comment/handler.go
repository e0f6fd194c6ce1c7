package comment

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

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
	s := r.PathPrefix("/comments/videos/{videoId}").Subrouter()
	s.HandleFunc("/get-video-comments", h.ListComments).Methods(http.MethodGet)
	s.HandleFunc("/add-comment", h.AddComment).Methods(http.MethodPost)
	s.HandleFunc("/update-comment/{commentId}", h.UpdateComment).Methods(http.MethodPatch)
	s.HandleFunc("/delete-comment/{commentId}", h.DeleteComment).Methods(http.MethodDelete)
}

type contentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	videoID, err := common.ParseObjectID(mux.Vars(r)["videoId"], "video")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	page, err := h.svc.ListComments(r.Context(), videoID, pagination.ParsePageRequest(r.URL.Query(), Sortable))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, page, "Comments fetched successfully")
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	videoID, err := common.ParseObjectID(mux.Vars(r)["videoId"], "video")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req contentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.svc.AddComment(r.Context(), p.UserID, videoID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusCreated, c, "Comment added successfully")
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	p, videoID, commentID, err := h.target(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req contentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.svc.UpdateComment(r.Context(), p.UserID, videoID, commentID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, c, "Comment updated successfully")
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	p, videoID, commentID, err := h.target(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.svc.DeleteComment(r.Context(), p.UserID, videoID, commentID); err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, map[string]string{"commentId": commentID.Hex()}, "Comment deleted successfully")
}

func (h *Handler) target(r *http.Request) (common.Principal, primitive.ObjectID, primitive.ObjectID, error) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		return p, primitive.NilObjectID, primitive.NilObjectID, err
	}
	vars := mux.Vars(r)
	videoID, err := common.ParseObjectID(vars["videoId"], "video")
	if err != nil {
		return p, primitive.NilObjectID, primitive.NilObjectID, err
	}
	commentID, err := common.ParseObjectID(vars["commentId"], "comment")
	if err != nil {
		return p, primitive.NilObjectID, primitive.NilObjectID, err
	}
	return p, videoID, commentID, nil
}
