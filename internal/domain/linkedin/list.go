package linkedin

// ListFilter narrows a content listing. Zero fields match everything.
type ListFilter struct {
	ContentType ContentType
	Status      Status
}
