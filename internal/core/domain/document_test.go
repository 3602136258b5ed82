package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_CopiesMetadata(t *testing.T) {
	meta := map[string]any{KeySourceType: "api"}
	doc := NewDocument("text", meta)

	meta[KeySourceType] = "changed"
	assert.Equal(t, "api", doc.GetString(KeySourceType))
}

func TestNewDocument_NilMetadata(t *testing.T) {
	doc := NewDocument("", nil)

	require.NotNil(t, doc.Metadata)
	assert.Empty(t, doc.Metadata)
	assert.Equal(t, 0, doc.Len())
}

func TestDocument_Len_CountsCharacters(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"café", 4},
		{"日本語", 3},
		{"a\nb", 3},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDocument(tt.text, nil).Len())
			assert.Equal(t, tt.want, CharCount(tt.text))
		})
	}
}

func TestDocument_With_DoesNotMutateOriginal(t *testing.T) {
	doc := NewDocument("text", map[string]any{KeyURL: "http://x.com"})
	next := doc.With(KeyQualityScore, 0.5)

	_, ok := doc.Get(KeyQualityScore)
	assert.False(t, ok)
	assert.Equal(t, 0.5, next.Metadata[KeyQualityScore])
	assert.Equal(t, "http://x.com", next.GetString(KeyURL))
}

func TestDocument_WithText(t *testing.T) {
	doc := NewDocument("before", map[string]any{KeyPage: 1})
	next := doc.WithText("after")

	assert.Equal(t, "before", doc.Text)
	assert.Equal(t, "after", next.Text)
	assert.Equal(t, 1, next.GetInt(KeyPage))

	next.Metadata[KeyPage] = 2
	assert.Equal(t, 1, doc.GetInt(KeyPage))
}

func TestDocument_Clone(t *testing.T) {
	doc := Document{Text: "x"}
	c := doc.Clone()

	require.NotNil(t, c.Metadata)
	c.Metadata["k"] = "v"
	assert.Nil(t, doc.Metadata)
}

func TestDocument_Getters(t *testing.T) {
	doc := NewDocument("", map[string]any{
		"s":   "value",
		"i":   7,
		"i64": int64(8),
		"f":   float64(9),
		"b":   true,
	})

	assert.Equal(t, "value", doc.GetString("s"))
	assert.Equal(t, "", doc.GetString("i"))
	assert.Equal(t, "", doc.GetString("missing"))
	assert.Equal(t, 7, doc.GetInt("i"))
	assert.Equal(t, 8, doc.GetInt("i64"))
	assert.Equal(t, 9, doc.GetInt("f"))
	assert.Equal(t, 0, doc.GetInt("b"))
	assert.Equal(t, 0, doc.GetInt("missing"))

	var empty Document
	_, ok := empty.Get("s")
	assert.False(t, ok)
}

func TestSourceType_IsValid(t *testing.T) {
	for _, s := range []SourceType{SourceAPI, SourceS3, SourceGCS, SourceHTML, SourcePDF, SourceFile} {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, SourceType("ftp").IsValid())
	assert.False(t, SourceType("").IsValid())
}

func TestIsPipelineKey(t *testing.T) {
	assert.True(t, IsPipelineKey(KeyQualityScore))
	assert.True(t, IsPipelineKey(KeyKeyTerms))
	assert.False(t, IsPipelineKey(KeySourceType))
	assert.False(t, IsPipelineKey(KeyURL))
}
