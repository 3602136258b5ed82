package keyterms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

func TestEnricher_Enrich(t *testing.T) {
	e := NewEnricher()
	assert.Equal(t, "key_terms", e.Name())

	doc := domain.NewDocument("Golang pipelines process documents", map[string]any{"url": "http://x"})
	out, err := e.Enrich(context.Background(), doc)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"golang", "pipelines", "process", "documents"}, out.Metadata[domain.KeyKeyTerms])
	assert.Equal(t, "http://x", out.GetString(domain.KeyURL))
	_, set := doc.Get(domain.KeyKeyTerms)
	assert.False(t, set)
}
