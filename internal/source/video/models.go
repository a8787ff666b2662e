package video

// VideoList is one page of a channel listing.
type VideoList struct {
	Data   []Video `json:"data"`
	Paging Paging  `json:"paging"`
}

type Paging struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PublishedAt  string `json:"published_at"`
	UpdatedAt    string `json:"updated_at"`
	ThumbnailURL string `json:"thumbnail_url"`
	URL          string `json:"url"`
}

// DetailList answers the batched detail call.
type DetailList struct {
	Data []Detail `json:"data"`
}

// Detail fields are pointers because the platform omits counts it is not
// willing to disclose.
type Detail struct {
	ID              string `json:"id"`
	DurationSeconds *int   `json:"duration_seconds"`
	ViewCount       *int64 `json:"view_count"`
	LikeCount       *int64 `json:"like_count"`
	CommentCount    *int64 `json:"comment_count"`
}
