package models

// MediaType is the kind of media item shown in the public galleries.
type MediaType string

const (
	MediaTypeGallery  MediaType = "GALLERY"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeAlbum    MediaType = "ALBUM"
	MediaTypeDocument MediaType = "DOCUMENT"
)

// MediaAsset represents one item in the media section: a gallery image,
// a video link, an album cover, or a downloadable document. Only the
// URL metadata lives here; file storage is external.
type MediaAsset struct {
	Base
	Type         MediaType `gorm:"not null;index" json:"type"`
	Title        string    `gorm:"not null" json:"title"`
	URL          string    `gorm:"not null" json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Caption      string    `json:"caption"`
	IsPublished  bool      `gorm:"default:false" json:"is_published"`
}
