package common

import (
	"mime"
	"path/filepath"
	"strings"
)

// MediaFileType is the kind of an uploaded asset: video files and thumbnails.
type MediaFileType string

const (
	MediaFileTypeImage   MediaFileType = "image"
	MediaFileTypeVideo   MediaFileType = "video"
	MediaFileTypeUnknown MediaFileType = ""
)

func (mft MediaFileType) String() string {
	return string(mft)
}

func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage || mft == MediaFileTypeVideo
}

// DetectFileType classifies a MIME type. Parameters such as "; charset" are
// ignored.
func DetectFileType(mimeType string) MediaFileType {
	lowerMimeType := strings.ToLower(strings.TrimSpace(mimeType))
	if base, _, err := mime.ParseMediaType(lowerMimeType); err == nil {
		lowerMimeType = base
	}
	if strings.HasPrefix(lowerMimeType, "image/") {
		return MediaFileTypeImage
	}
	if strings.HasPrefix(lowerMimeType, "video/") {
		return MediaFileTypeVideo
	}
	return MediaFileTypeUnknown
}

// ContentTypeFor maps a stored filename to the Content-Type it is served with.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	default:
		return "application/octet-stream"
	}
}

// ResolveFileType prefers the declared MIME type and falls back to the
// filename extension when the client sent none or a generic one.
func ResolveFileType(mimeType, filename string) MediaFileType {
	if t := DetectFileType(mimeType); t.IsValid() {
		return t
	}
	return DetectFileType(ContentTypeFor(filename))
}
