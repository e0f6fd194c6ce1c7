package playlist

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

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
	r.HandleFunc("/playlist/create-playlist", h.CreatePlaylist).Methods(http.MethodPost)
	r.HandleFunc("/playlist/all-playlists/{userId}", h.UserPlaylists).Methods(http.MethodGet)
	r.HandleFunc("/playlist/get-playlist/{playlistId}", h.GetPlaylist).Methods(http.MethodGet)
	r.HandleFunc("/playlist/{playlistId}/add/{videoId}", h.AddVideo).Methods(http.MethodPatch)
	r.HandleFunc("/playlist/{playlistId}/remove/{videoId}", h.RemoveVideo).Methods(http.MethodPatch)
	r.HandleFunc("/playlist/update-playlist/{playlistId}", h.UpdatePlaylist).Methods(http.MethodPatch)
	r.HandleFunc("/playlist/delete/{playlistId}", h.DeletePlaylist).Methods(http.MethodDelete)
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req createRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	pl, err := h.svc.CreatePlaylist(r.Context(), p.UserID, req.Name, req.Description)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusCreated, pl, "Playlist created successfully")
}

func (h *Handler) UserPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, err := common.ParseObjectID(mux.Vars(r)["userId"], "user")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	page, err := h.svc.UserPlaylists(r.Context(), userID, pagination.ParsePageRequest(r.URL.Query(), Sortable))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, page, "Playlists fetched successfully")
}

func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	id, err := common.ParseObjectID(mux.Vars(r)["playlistId"], "playlist")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	pl, err := h.svc.GetPlaylist(r.Context(), p.UserID, id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, pl, "Playlist fetched successfully")
}

func (h *Handler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.svc.AddVideo, "Video added to playlist")
}

func (h *Handler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.svc.RemoveVideo, "Video removed from playlist")
}

type membershipFunc func(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*dbmongo.Playlist, error)

func (h *Handler) membership(w http.ResponseWriter, r *http.Request, fn membershipFunc, message string) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	vars := mux.Vars(r)
	playlistID, err := common.ParseObjectID(vars["playlistId"], "playlist")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	videoID, err := common.ParseObjectID(vars["videoId"], "video")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	pl, err := fn(r.Context(), p.UserID, playlistID, videoID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, pl, message)
}

func (h *Handler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	id, err := common.ParseObjectID(mux.Vars(r)["playlistId"], "playlist")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req updateRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	pl, err := h.svc.UpdatePlaylist(r.Context(), p.UserID, id, req.Name, req.Description)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, pl, "Playlist updated successfully")
}

func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	id, err := common.ParseObjectID(mux.Vars(r)["playlistId"], "playlist")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.svc.DeletePlaylist(r.Context(), p.UserID, id); err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, map[string]string{"playlistId": id.Hex()}, "Playlist deleted successfully")
}
