// Package media uploads and removes video files and thumbnails on the media
// host, and serves them back over HTTP.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"vidtube/internal/common"
	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
	"vidtube/internal/queue"
)

// Store is the raw file store behind the host.
type Store interface {
	UploadFile(ctx context.Context, filename, mimeType, uploaderID string, content io.Reader) (*dbmongo.MediaFile, error)
	DeleteFile(ctx context.Context, fileID string) error
}

// Upload is one file received from a client. Open may be called once per
// attempt.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Asset is a stored file as the API refers to it.
type Asset struct {
	FileID   string
	URL      string
	FileType common.MediaFileType
	Size     int64
}

type Host struct {
	store      Store
	cleanup    queue.Publisher
	baseURL    string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

func NewHost(store Store, cleanup queue.Publisher, cfg config.MediaConfig, baseURL string) *Host {
	if cleanup == nil {
		cleanup = queue.LogPublisher{}
	}
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	return &Host{
		store:      store,
		cleanup:    cleanup,
		baseURL:    baseURL,
		timeout:    cfg.UploadTimeout,
		maxRetries: retries,
		retryDelay: cfg.RetryDelay,
	}
}

func (h *Host) URL(fileID string) string {
	return h.baseURL + fileID
}

// Upload stores u after checking it is of the wanted kind. Each attempt is
// bounded by the upload timeout; transient failures are retried.
func (h *Host) Upload(ctx context.Context, u Upload, uploaderID string, want common.MediaFileType) (*Asset, error) {
	if u.Open == nil {
		return nil, common.NewValidationError(fmt.Sprintf("%s file is required", want))
	}
	if got := common.ResolveFileType(u.ContentType, u.Filename); got != want {
		return nil, common.NewValidationError(fmt.Sprintf("%s must be a %s file", u.Filename, want))
	}

	var lastErr error
	for attempt := 1; attempt <= h.maxRetries; attempt++ {
		file, err := h.uploadOnce(ctx, u, uploaderID)
		if err == nil {
			return &Asset{FileID: file.ID, URL: h.URL(file.ID), FileType: want, Size: file.Size}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		log.Warn().Err(err).Str("filename", u.Filename).Int("attempt", attempt).Msg("media upload failed")
		if attempt < h.maxRetries && !h.wait(ctx, attempt) {
			break
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(lastErr, ctxErr) {
		lastErr = fmt.Errorf("%v: %w", lastErr, ctxErr)
	}
	return nil, common.NewUpstreamError("Failed to upload file to media host", lastErr)
}

func (h *Host) uploadOnce(ctx context.Context, u Upload, uploaderID string) (*dbmongo.MediaFile, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, h.timeout)
	defer cancel()

	r, err := u.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", u.Filename, err)
	}
	defer r.Close()

	file, err := h.store.UploadFile(ctx, u.Filename, u.ContentType, uploaderID, r)
	if err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("%v: %w", err, ctx.Err())
	}
	return file, err
}

// Delete removes fileID, retrying within the configured bounds.
func (h *Host) Delete(ctx context.Context, fileID string) error {
	var lastErr error
	for attempt := 1; attempt <= h.maxRetries; attempt++ {
		opCtx, cancel := dbmongo.WithOpTimeout(ctx, h.timeout)
		lastErr = h.store.DeleteFile(opCtx, fileID)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || (attempt < h.maxRetries && !h.wait(ctx, attempt)) {
			break
		}
	}
	return lastErr
}

// Discard deletes fileID, and when that fails hands it to the cleanup queue
// so the deletion can be retried later. It never fails the caller's request.
func (h *Host) Discard(ctx context.Context, fileID, reason string) {
	if fileID == "" {
		return
	}
	err := h.Delete(ctx, fileID)
	if err == nil {
		return
	}
	log.Warn().Err(err).Str("fileId", fileID).Str("reason", reason).Msg("media delete failed, enqueueing cleanup")

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := h.cleanup.PublishCleanup(pubCtx, queue.NewMediaCleanupEvent(fileID, reason)); err != nil {
		log.Error().Err(err).Str("fileId", fileID).Msg("media cleanup could not be enqueued")
	}
}

func (h *Host) wait(ctx context.Context, attempt int) bool {
	if h.retryDelay <= 0 {
		return true
	}
	t := time.NewTimer(h.retryDelay * time.Duration(attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
