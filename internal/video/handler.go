package video

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"vidtube/internal/common"
	"vidtube/internal/media"
	"vidtube/internal/pagination"
)

// multipart bodies above this size spill to temp files
const formMemory = 32 << 20

type Handler struct {
	svc            Service
	maxUploadBytes int64
}

func NewHandler(svc Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/videos", h.ListVideos).Methods(http.MethodGet)
	r.HandleFunc("/videos", h.PublishVideo).Methods(http.MethodPost)
	r.HandleFunc("/videos/toggle/publish/{videoId}", h.TogglePublish).Methods(http.MethodPatch)
	r.HandleFunc("/videos/{videoId}", h.GetVideo).Methods(http.MethodGet)
	r.HandleFunc("/videos/{videoId}", h.UpdateVideo).Methods(http.MethodPatch)
	r.HandleFunc("/videos/{videoId}", h.DeleteVideo).Methods(http.MethodDelete)
}

func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	q := r.URL.Query()
	page, err := h.svc.ListVideos(r.Context(), p.UserID, ListQuery{
		UserID: q.Get("userId"),
		Query:  q.Get("query"),
		Page:   pagination.ParsePageRequest(q, Sortable),
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, page, "Videos fetched successfully")
}

func (h *Handler) PublishVideo(w http.ResponseWriter, r *http.Request) {
	p, err := common.RequirePrincipal(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.parseMultipart(w, r); err != nil {
		common.WriteError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	duration, err := parseDuration(r.FormValue("duration"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	in := PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    duration,
	}
	if f := formFile(r, "videoFile"); f != nil {
		in.VideoFile = *f
	}
	if f := formFile(r, "thumbnail"); f != nil {
		in.Thumbnail = *f
	}

	v, err := h.svc.PublishVideo(r.Context(), p.UserID, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusCreated, v, "Video published successfully")
}

func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
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
	v, err := h.svc.GetVideo(r.Context(), p.UserID, videoID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, v, "Video fetched successfully")
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdateVideo accepts either a multipart form (when files are replaced) or a
// JSON body with the text fields.
func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
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

	var in UpdateInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := h.parseMultipart(w, r); err != nil {
			common.WriteError(w, err)
			return
		}
		defer r.MultipartForm.RemoveAll()
		in.Title = formValue(r, "title")
		in.Description = formValue(r, "description")
		in.VideoFile = formFile(r, "videoFile")
		in.Thumbnail = formFile(r, "thumbnail")
	} else {
		var req updateRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(w, err)
			return
		}
		in.Title, in.Description = req.Title, req.Description
	}

	v, err := h.svc.UpdateVideo(r.Context(), p.UserID, videoID, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, v, "Video updated successfully")
}

func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.DeleteVideo(r.Context(), p.UserID, videoID); err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, map[string]string{"videoId": videoID.Hex()}, "Video deleted successfully")
}

func (h *Handler) TogglePublish(w http.ResponseWriter, r *http.Request) {
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
	v, err := h.svc.TogglePublish(r.Context(), p.UserID, videoID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteSuccess(w, http.StatusOK, v, "Video publish status toggled")
}

func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &common.APIError{StatusCode: http.StatusRequestEntityTooLarge, Message: "Upload is too large"}
		}
		return common.NewValidationError("invalid multipart form", err.Error())
	}
	return nil
}

func formValue(r *http.Request, name string) *string {
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formFile(r *http.Request, name string) *media.Upload {
	files := r.MultipartForm.File[name]
	if len(files) == 0 {
		return nil
	}
	fh := files[0]
	return &media.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open:        openPart(fh),
	}
}

func openPart(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

func parseDuration(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d < 0 {
		return 0, common.NewValidationError("duration must be a non-negative number of seconds")
	}
	return d, nil
}
