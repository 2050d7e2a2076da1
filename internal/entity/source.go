package entity

// SourceMetadata is the provenance of a source fragment. Nil fields were not
// present in the response.
type SourceMetadata struct {
	Filename   *string
	ChunkIndex *int
}

// Source is a retrieved fragment returned alongside an answer.
type Source struct {
	Content    *string
	Similarity *float64
	Metadata   *SourceMetadata
}

// HasContent reports whether the source carries non-empty content.
func (s *Source) HasContent() bool {
	return s.Content != nil && *s.Content != ""
}

// Filename returns the metadata filename, if any.
func (s *Source) Filename() (string, bool) {
	if s.Metadata == nil || s.Metadata.Filename == nil || *s.Metadata.Filename == "" {
		return "", false
	}
	return *s.Metadata.Filename, true
}

// ChunkIndex returns the metadata chunk index, if any.
func (s *Source) ChunkIndex() (int, bool) {
	if s.Metadata == nil || s.Metadata.ChunkIndex == nil {
		return 0, false
	}
	return *s.Metadata.ChunkIndex, true
}
