package blogger

// PostList is one page of the posts listing.
type PostList struct {
	Kind          string `json:"kind"`
	NextPageToken string `json:"nextPageToken"`
	Items         []Post `json:"items"`
}

type Post struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	URL       string   `json:"url"`
	Published string   `json:"published"`
	Updated   string   `json:"updated"`
	Labels    []string `json:"labels"`
	Author    *Author  `json:"author"`
	Images    []Image  `json:"images"`
}

type Author struct {
	DisplayName string `json:"displayName"`
}

type Image struct {
	URL string `json:"url"`
}
