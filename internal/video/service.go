package video

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/guard"
	"vidtube/internal/media"
	"vidtube/internal/pagination"
)

// MediaHost is the part of media.Host the video service uses.
type MediaHost interface {
	Upload(ctx context.Context, u media.Upload, uploaderID string, want common.MediaFileType) (*media.Asset, error)
	Discard(ctx context.Context, fileID, reason string)
}

type ListQuery struct {
	UserID string
	Query  string
	Page   pagination.PageRequest
}

type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   media.Upload
	Thumbnail   media.Upload
}

// UpdateInput carries the optional changes of an update. A nil file leaves
// the stored one in place.
type UpdateInput struct {
	Title       *string
	Description *string
	VideoFile   *media.Upload
	Thumbnail   *media.Upload
}

type Service interface {
	ListVideos(ctx context.Context, actor primitive.ObjectID, q ListQuery) (*pagination.PageResult[dbmongo.VideoDetails], error)
	PublishVideo(ctx context.Context, actor primitive.ObjectID, in PublishInput) (*dbmongo.Video, error)
	GetVideo(ctx context.Context, actor, videoID primitive.ObjectID) (*dbmongo.VideoDetails, error)
	UpdateVideo(ctx context.Context, actor, videoID primitive.ObjectID, in UpdateInput) (*dbmongo.Video, error)
	DeleteVideo(ctx context.Context, actor, videoID primitive.ObjectID) error
	TogglePublish(ctx context.Context, actor, videoID primitive.ObjectID) (*dbmongo.Video, error)
}

type service struct {
	repo  Repository
	media MediaHost
	now   func() time.Time
}

func NewService(repo Repository, host MediaHost) Service {
	return &service{repo: repo, media: host, now: time.Now}
}

func (s *service) ListVideos(ctx context.Context, actor primitive.ObjectID, q ListQuery) (*pagination.PageResult[dbmongo.VideoDetails], error) {
	if strings.TrimSpace(q.UserID) == "" {
		return nil, common.NewValidationError("userId is required")
	}
	owner, err := common.ParseObjectID(q.UserID, "user")
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{
		Owner:         owner,
		Title:         strings.TrimSpace(q.Query),
		PublishedOnly: owner != actor,
	}, q.Page)
}

func (s *service) PublishVideo(ctx context.Context, actor primitive.ObjectID, in PublishInput) (*dbmongo.Video, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := common.RequireFields(map[string]string{"title": in.Title, "description": in.Description}); err != nil {
		return nil, err
	}
	if in.Duration < 0 {
		return nil, common.NewValidationError("duration cannot be negative")
	}
	if in.VideoFile.Open == nil {
		return nil, common.NewValidationError("Video file is required")
	}
	if in.Thumbnail.Open == nil {
		return nil, common.NewValidationError("Thumbnail is required")
	}

	uploader := actor.Hex()
	videoAsset, err := s.media.Upload(ctx, in.VideoFile, uploader, common.MediaFileTypeVideo)
	if err != nil {
		return nil, err
	}
	thumbAsset, err := s.media.Upload(ctx, in.Thumbnail, uploader, common.MediaFileTypeImage)
	if err != nil {
		s.media.Discard(ctx, videoAsset.FileID, "thumbnail upload failed")
		return nil, err
	}

	now := s.now()
	v := &dbmongo.Video{
		ID:          primitive.NewObjectID(),
		VideoFile:   videoAsset.URL,
		VideoFileID: videoAsset.FileID,
		Thumbnail:   thumbAsset.URL,
		ThumbnailID: thumbAsset.FileID,
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		IsPublished: true,
		Owner:       actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		s.settleUploads(ctx, v.ID, []string{videoAsset.FileID, thumbAsset.FileID}, err, "video create failed")
		return nil, err
	}
	log.Info().Str("videoId", v.ID.Hex()).Str("owner", uploader).Msg("video published")
	return v, nil
}

// GetVideo returns the video with its owner and counts the view. Unpublished
// videos are only visible to their owner.
func (s *service) GetVideo(ctx context.Context, actor, videoID primitive.ObjectID) (*dbmongo.VideoDetails, error) {
	v, err := s.repo.Details(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil || (!v.IsPublished && (v.Owner == nil || v.Owner.ID != actor)) {
		return nil, common.NewNotFoundError("Video not found")
	}
	if err := s.repo.IncrementViews(ctx, videoID); err != nil {
		log.Warn().Err(err).Str("videoId", videoID.Hex()).Msg("view not counted")
		return v, nil
	}
	v.Views++
	return v, nil
}

func (s *service) UpdateVideo(ctx context.Context, actor, videoID primitive.ObjectID, in UpdateInput) (*dbmongo.Video, error) {
	changes := Changes{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, common.NewValidationError("title cannot be empty")
		}
		changes.Title = &title
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return nil, common.NewValidationError("description cannot be empty")
		}
		changes.Description = &desc
	}
	if changes.Empty() && in.VideoFile == nil && in.Thumbnail == nil {
		return nil, common.NewValidationError("Nothing to update")
	}

	existing, err := s.owned(ctx, actor, videoID)
	if err != nil {
		return nil, err
	}

	// Upload new files first; until the record is updated the old ones stay
	// authoritative.
	var uploaded []string
	discardUploaded := func(reason string) {
		for _, id := range uploaded {
			s.media.Discard(ctx, id, reason)
		}
	}
	if in.VideoFile != nil {
		asset, err := s.media.Upload(ctx, *in.VideoFile, actor.Hex(), common.MediaFileTypeVideo)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, asset.FileID)
		changes.VideoFile = &FileRef{URL: asset.URL, FileID: asset.FileID}
	}
	if in.Thumbnail != nil {
		asset, err := s.media.Upload(ctx, *in.Thumbnail, actor.Hex(), common.MediaFileTypeImage)
		if err != nil {
			discardUploaded("video update failed")
			return nil, err
		}
		uploaded = append(uploaded, asset.FileID)
		changes.Thumbnail = &FileRef{URL: asset.URL, FileID: asset.FileID}
	}

	updated, err := s.repo.Update(ctx, videoID, changes)
	if err != nil {
		s.settleUploads(ctx, videoID, uploaded, err, "video update failed")
		return nil, err
	}

	if changes.VideoFile != nil {
		s.media.Discard(ctx, existing.VideoFileID, "video file replaced")
	}
	if changes.Thumbnail != nil {
		s.media.Discard(ctx, existing.ThumbnailID, "thumbnail replaced")
	}
	return updated, nil
}

func (s *service) DeleteVideo(ctx context.Context, actor, videoID primitive.ObjectID) error {
	existing, err := s.owned(ctx, actor, videoID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, videoID); err != nil {
		return err
	}
	s.media.Discard(ctx, existing.VideoFileID, "video deleted")
	s.media.Discard(ctx, existing.ThumbnailID, "video deleted")
	log.Info().Str("videoId", videoID.Hex()).Msg("video deleted")
	return nil
}

func (s *service) TogglePublish(ctx context.Context, actor, videoID primitive.ObjectID) (*dbmongo.Video, error) {
	if _, err := s.owned(ctx, actor, videoID); err != nil {
		return nil, err
	}
	return s.repo.TogglePublished(ctx, videoID)
}

// settleUploads releases the uploads of a failed write. A rejected write
// (400 or 404) never reached the record, so everything goes. Otherwise the
// write may have been applied: the record is read back and only uploads it
// does not reference are discarded. When that read fails the uploads are kept.
func (s *service) settleUploads(ctx context.Context, videoID primitive.ObjectID, uploaded []string, writeErr error, reason string) {
	if len(uploaded) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	referenced := map[string]bool{}
	if status := common.StatusOf(writeErr); status != http.StatusBadRequest && status != http.StatusNotFound {
		stored, err := s.repo.FindByID(ctx, videoID)
		if err != nil {
			log.Warn().Err(err).Str("videoId", videoID.Hex()).Strs("fileIds", uploaded).
				Msg("write outcome unknown, keeping uploads")
			return
		}
		if stored != nil {
			referenced[stored.VideoFileID] = true
			referenced[stored.ThumbnailID] = true
		}
	}
	for _, id := range uploaded {
		if referenced[id] {
			continue
		}
		s.media.Discard(ctx, id, reason)
	}
}

// owned loads the video and checks actor owns it.
func (s *service) owned(ctx context.Context, actor, videoID primitive.ObjectID) (*dbmongo.Video, error) {
	v, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, common.NewNotFoundError("Video not found")
	}
	if err := guard.CheckResource(v, actor); err != nil {
		return nil, err
	}
	return v, nil
}
