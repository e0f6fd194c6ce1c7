package dbmongo

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stored records. Every write goes through Validate first; the store does not
// enforce a schema on its own.

var (
	ErrMissingOwner   = errors.New("owner is required")
	ErrMissingContent = errors.New("content is required")
)

// UserRef is the public subset of a user joined into other records. It never
// carries credentials.
type UserRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"fullName" json:"fullName"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

// UserRefFields is the projection that produces a UserRef.
var UserRefFields = []string{"username", "fullName", "avatar"}

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	FullName     string               `bson:"fullName" json:"fullName"`
	Avatar       string               `bson:"avatar" json:"avatar"`
	CoverImage   string               `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Password     string               `bson:"password" json:"-"`
	WatchHistory []primitive.ObjectID `bson:"watchHistory" json:"watchHistory"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(u.FullName) == "" {
		return errors.New("fullName is required")
	}
	if u.Password == "" {
		return errors.New("password hash is required")
	}
	return nil
}

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	VideoFileID string             `bson:"videoFileId" json:"-"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	ThumbnailID string             `bson:"thumbnailId" json:"-"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (v *Video) OwnerRef() primitive.ObjectID {
	if v == nil {
		return primitive.NilObjectID
	}
	return v.Owner
}

func (v *Video) Validate() error {
	switch {
	case v.Owner.IsZero():
		return ErrMissingOwner
	case strings.TrimSpace(v.Title) == "":
		return errors.New("title is required")
	case strings.TrimSpace(v.Description) == "":
		return errors.New("description is required")
	case v.VideoFile == "" || v.VideoFileID == "":
		return errors.New("videoFile is required")
	case v.Thumbnail == "" || v.ThumbnailID == "":
		return errors.New("thumbnail is required")
	case v.Duration < 0:
		return errors.New("duration cannot be negative")
	case v.Views < 0:
		return errors.New("views cannot be negative")
	}
	return nil
}

// VideoDetails is a video with its owner joined.
type VideoDetails struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       *UserRef           `bson:"owner,omitempty" json:"owner,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VideoSummaryFields is the projection used when a video is joined into
// another record (likes, playlists).
var VideoSummaryFields = []string{"videoFile", "thumbnail", "title", "description", "duration", "views", "isPublished", "owner", "createdAt"}

// VideoSummary keeps the owner as a bare id.
type VideoSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (c *Comment) OwnerRef() primitive.ObjectID {
	if c == nil {
		return primitive.NilObjectID
	}
	return c.Owner
}

func (c *Comment) Validate() error {
	switch {
	case c.Owner.IsZero():
		return ErrMissingOwner
	case c.Video.IsZero():
		return errors.New("video is required")
	case strings.TrimSpace(c.Content) == "":
		return ErrMissingContent
	}
	return nil
}

type CommentDetails struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Owner     *UserRef           `bson:"owner,omitempty" json:"owner,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LikeTarget names the field of a Like that points at the liked resource.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

func (t LikeTarget) IsValid() bool {
	return t == LikeTargetVideo || t == LikeTargetComment || t == LikeTargetTweet
}

// Like relates a user to exactly one video, comment or tweet.
type Like struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	LikedBy   primitive.ObjectID  `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// NewLike builds the relation record for target/id.
func NewLike(target LikeTarget, id, likedBy primitive.ObjectID, now time.Time) *Like {
	l := &Like{LikedBy: likedBy, CreatedAt: now, UpdatedAt: now}
	ref := id
	switch target {
	case LikeTargetVideo:
		l.Video = &ref
	case LikeTargetComment:
		l.Comment = &ref
	case LikeTargetTweet:
		l.Tweet = &ref
	}
	return l
}

func (l *Like) OwnerRef() primitive.ObjectID {
	if l == nil {
		return primitive.NilObjectID
	}
	return l.LikedBy
}

func (l *Like) Validate() error {
	if l.LikedBy.IsZero() {
		return errors.New("likedBy is required")
	}
	targets := 0
	for _, ref := range []*primitive.ObjectID{l.Video, l.Comment, l.Tweet} {
		if ref != nil && !ref.IsZero() {
			targets++
		}
	}
	if targets != 1 {
		return errors.New("a like must reference exactly one target")
	}
	return nil
}

type LikedVideo struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Video     *VideoSummary      `bson:"video,omitempty" json:"video,omitempty"`
	LikedBy   primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"likedAt"`
}

type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (s *Subscription) OwnerRef() primitive.ObjectID {
	if s == nil {
		return primitive.NilObjectID
	}
	return s.Subscriber
}

func (s *Subscription) Validate() error {
	switch {
	case s.Subscriber.IsZero():
		return errors.New("subscriber is required")
	case s.Channel.IsZero():
		return errors.New("channel is required")
	case s.Subscriber == s.Channel:
		return errors.New("cannot subscribe to your own channel")
	}
	return nil
}

// SubscriberEntry is one row of a channel's subscriber list.
type SubscriberEntry struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Subscriber   *UserRef           `bson:"subscriber,omitempty" json:"subscriber,omitempty"`
	SubscribedAt time.Time          `bson:"createdAt" json:"subscribedAt"`
}

// ChannelEntry is one row of a user's subscribed channels.
type ChannelEntry struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Channel      *UserRef           `bson:"channel,omitempty" json:"channel,omitempty"`
	SubscribedAt time.Time          `bson:"createdAt" json:"subscribedAt"`
}

type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Videos      []primitive.ObjectID `bson:"videos" json:"videos"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (p *Playlist) OwnerRef() primitive.ObjectID {
	if p == nil {
		return primitive.NilObjectID
	}
	return p.Owner
}

func (p *Playlist) Validate() error {
	switch {
	case p.Owner.IsZero():
		return ErrMissingOwner
	case strings.TrimSpace(p.Name) == "":
		return errors.New("name is required")
	case strings.TrimSpace(p.Description) == "":
		return errors.New("description is required")
	}
	return nil
}

// Contains reports whether the playlist already lists videoID.
func (p *Playlist) Contains(videoID primitive.ObjectID) bool {
	if p == nil {
		return false
	}
	for _, v := range p.Videos {
		if v == videoID {
			return true
		}
	}
	return false
}

// PlaylistSummary is a playlist row with its owner joined.
type PlaylistSummary struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Videos      []primitive.ObjectID `bson:"videos" json:"videos"`
	Owner       *UserRef             `bson:"owner,omitempty" json:"owner,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PlaylistDetails is a playlist with its owner and videos joined.
type PlaylistDetails struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Videos      []VideoSummary     `bson:"videos" json:"videos"`
	Owner       *UserRef           `bson:"owner,omitempty" json:"owner,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Tweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (t *Tweet) OwnerRef() primitive.ObjectID {
	if t == nil {
		return primitive.NilObjectID
	}
	return t.Owner
}

func (t *Tweet) Validate() error {
	if t.Owner.IsZero() {
		return ErrMissingOwner
	}
	if strings.TrimSpace(t.Content) == "" {
		return ErrMissingContent
	}
	return nil
}

type TweetDetails struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Owner     *UserRef           `bson:"owner,omitempty" json:"owner,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
