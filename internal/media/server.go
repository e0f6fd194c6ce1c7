package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

// Downloader opens stored files for streaming.
type Downloader interface {
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error)
}

type HTTPServer struct {
	storage Downloader
	router  *mux.Router
}

func NewHTTPServer(storage Downloader) *HTTPServer {
	s := &HTTPServer{storage: storage, router: mux.NewRouter()}
	s.router.HandleFunc("/media/{fileId}", s.serveFile).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	return s
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileId"]

	reader, mediaFile, err := s.storage.DownloadFile(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, dbmongo.ErrMediaNotFound) {
			common.WriteError(w, common.NewNotFoundError("File not found"))
			return
		}
		common.WriteError(w, common.NewUpstreamError("Failed to read file", err))
		return
	}
	defer reader.Close()

	contentType := mediaFile.ContentType
	if common.DetectFileType(contentType) == common.MediaFileTypeUnknown {
		contentType = common.ContentTypeFor(mediaFile.Filename)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", mediaFile.Size))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, reader); err != nil {
		log.Warn().Err(err).Str("fileId", fileID).Msg("error streaming file")
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	common.WriteSuccess(w, http.StatusOK, map[string]string{"status": "OK"}, "Media server is healthy")
}
