package models

// Post is a blog post record, keyed by a slug derived from its title.
// Datetime is a caller-supplied string and is stored as-is.
type Post struct {
	Slug       string `json:"slug,omitempty"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Datetime   string `json:"datetime"`
	FeatureImg string `json:"feature_img"`
	Content    string `json:"content"`
}

// PostPatch carries optional new values for a partial post update, with the
// same nil-means-unchanged contract as UserPatch.
type PostPatch struct {
	Title      *string `json:"title"`
	Author     *string `json:"author"`
	Datetime   *string `json:"datetime"`
	FeatureImg *string `json:"feature_img"`
	Content    *string `json:"content"`
}
