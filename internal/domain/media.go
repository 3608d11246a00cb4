package domain

type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// MediaRecord is the resolved view of a single post. Optional fields are nil when
// the page did not carry them.
type MediaRecord struct {
	ID           *string `json:"id,omitempty"`
	CommentCount *int64  `json:"comment_count,omitempty"`
	LikeCount    *int64  `json:"like_count,omitempty"`
	ShareCount   *int64  `json:"share_count,omitempty"`
	CollectCount *int64  `json:"collect_count,omitempty"`

	AuthorName  *string `json:"author_name,omitempty"`
	AuthorBio   *string `json:"author_bio,omitempty"`
	Description *string `json:"description,omitempty"`
	CreatedAt   *string `json:"created_at,omitempty"`

	Kind      Kind     `json:"kind"`
	VideoURL  string   `json:"video_url,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// IsVideo reports whether the record describes a single video post.
func (r MediaRecord) IsVideo() bool {
	return r.Kind == KindVideo
}
