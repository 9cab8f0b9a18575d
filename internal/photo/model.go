package photo

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("photo not found")
	ErrInvalidShop = errors.New("invalid shop_id")
	ErrNotAnImage  = errors.New("uploaded file is not an image")
	ErrTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrNoThumbnail = errors.New("thumbnail not available for this photo")
)

// Photo is an image attached to a shop's public profile.
type Photo struct {
	ID            string
	ShopID        string
	Filename      string
	StoragePath   string // internal, never serialized
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public path for the photo content.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public path for the photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
