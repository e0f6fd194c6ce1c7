package playlist

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/guard"
	"vidtube/internal/pagination"
)

type Service interface {
	CreatePlaylist(ctx context.Context, actor primitive.ObjectID, name, description string) (*dbmongo.Playlist, error)
	UserPlaylists(ctx context.Context, userID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.PlaylistSummary], error)
	GetPlaylist(ctx context.Context, viewer, id primitive.ObjectID) (*dbmongo.PlaylistDetails, error)
	AddVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*dbmongo.Playlist, error)
	RemoveVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*dbmongo.Playlist, error)
	UpdatePlaylist(ctx context.Context, actor, playlistID primitive.ObjectID, name, description *string) (*dbmongo.Playlist, error)
	DeletePlaylist(ctx context.Context, actor, playlistID primitive.ObjectID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) CreatePlaylist(ctx context.Context, actor primitive.ObjectID, name, description string) (*dbmongo.Playlist, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := common.RequireFields(map[string]string{"name": name, "description": description}); err != nil {
		return nil, err
	}
	now := s.now()
	p := &dbmongo.Playlist{
		Name:        name,
		Description: description,
		Videos:      []primitive.ObjectID{},
		Owner:       actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UserPlaylists(ctx context.Context, userID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.PlaylistSummary], error) {
	return s.repo.ListByOwner(ctx, userID, page)
}

func (s *service) GetPlaylist(ctx context.Context, viewer, id primitive.ObjectID) (*dbmongo.PlaylistDetails, error) {
	p, err := s.repo.Details(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.NewNotFoundError("Playlist not found")
	}
	if p.Videos == nil {
		p.Videos = []dbmongo.VideoSummary{}
	}
	return p, nil
}

func (s *service) AddVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*dbmongo.Playlist, error) {
	p, err := s.owned(ctx, actor, playlistID)
	if err != nil {
		return nil, err
	}
	// Someone else's unpublished video reads as missing.
	ok, err := s.repo.VideoVisible(ctx, videoID, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewNotFoundError("Video not found")
	}
	if p.Contains(videoID) {
		return nil, common.NewValidationError("Video already exists in playlist")
	}
	return s.repo.AddVideo(ctx, playlistID, videoID)
}

func (s *service) RemoveVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*dbmongo.Playlist, error) {
	p, err := s.owned(ctx, actor, playlistID)
	if err != nil {
		return nil, err
	}
	if !p.Contains(videoID) {
		return nil, common.NewNotFoundError("Video not found in playlist")
	}
	return s.repo.RemoveVideo(ctx, playlistID, videoID)
}

func (s *service) UpdatePlaylist(ctx context.Context, actor, playlistID primitive.ObjectID, name, description *string) (*dbmongo.Playlist, error) {
	name, err := trimmedField("name", name)
	if err != nil {
		return nil, err
	}
	description, err = trimmedField("description", description)
	if err != nil {
		return nil, err
	}
	if name == nil && description == nil {
		return nil, common.NewValidationError("Nothing to update")
	}
	if _, err := s.owned(ctx, actor, playlistID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, playlistID, name, description)
}

func (s *service) DeletePlaylist(ctx context.Context, actor, playlistID primitive.ObjectID) error {
	if _, err := s.owned(ctx, actor, playlistID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, playlistID)
}

func (s *service) owned(ctx context.Context, actor, playlistID primitive.ObjectID) (*dbmongo.Playlist, error) {
	p, err := s.repo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.NewNotFoundError("Playlist not found")
	}
	if err := guard.CheckResource(p, actor); err != nil {
		return nil, err
	}
	return p, nil
}

// trimmedField trims an optional field; a provided but blank value is an
// error.
func trimmedField(name string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil, common.NewValidationError(name + " cannot be empty")
	}
	return &t, nil
}
