package domain

import "unicode/utf8"

// Document is a unit of text plus metadata.
// Loaders create documents; pipeline stages never modify a document in place,
// they return a new value carrying a copy of the metadata.
type Document struct {
	// Text is the document body. It may be empty.
	Text string `json:"text"`

	// Metadata holds provenance keys set by loaders and keys added by
	// pipeline stages. A nil map is treated as empty.
	Metadata map[string]any `json:"metadata"`
}

// NewDocument creates a document with a private copy of metadata.
func NewDocument(text string, metadata map[string]any) Document {
	return Document{
		Text:     text,
		Metadata: CopyMetadata(metadata),
	}
}

// Len returns the number of characters (code points) in the document text.
func (d Document) Len() int {
	return CharCount(d.Text)
}

// Clone returns a copy of the document whose metadata map is not shared.
func (d Document) Clone() Document {
	return Document{
		Text:     d.Text,
		Metadata: CopyMetadata(d.Metadata),
	}
}

// WithText returns a copy of the document with its text replaced.
func (d Document) WithText(text string) Document {
	return Document{
		Text:     text,
		Metadata: CopyMetadata(d.Metadata),
	}
}

// With returns a copy of the document with key set to value.
func (d Document) With(key string, value any) Document {
	c := d.Clone()
	c.Metadata[key] = value
	return c
}

// Get returns the metadata value for key.
func (d Document) Get(key string) (any, bool) {
	if d.Metadata == nil {
		return nil, false
	}
	v, ok := d.Metadata[key]
	return v, ok
}

// GetString returns a string metadata value, or "" if absent or not a string.
func (d Document) GetString(key string) string {
	v, ok := d.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// GetInt returns an integer metadata value, or 0 if absent or not an integer.
func (d Document) GetInt(key string) int {
	v, ok := d.Get(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// CopyMetadata creates a shallow copy of metadata.
// A nil source yields an empty, non-nil map.
func CopyMetadata(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src)+4)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// CharCount returns the number of Unicode code points in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}
