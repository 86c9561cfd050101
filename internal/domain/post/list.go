package post

// ListFilter narrows a post listing. A nil Published lists drafts and
// published posts alike.
type ListFilter struct {
	Category  string
	Tag       string
	Published *bool
}
