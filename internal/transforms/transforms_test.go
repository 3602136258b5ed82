package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_Order(t *testing.T) {
	stages := Default()

	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"cleaner", "noise", "normaliser"}, names)
}

func TestApply_Scenario(t *testing.T) {
	in := "Hello!!!! Visit http://x.com or email a@b.com. Multiple   spaces."

	got := Apply(Default(), in)

	// The removed URL and email leave their neighbouring spaces behind.
	assert.Equal(t, "hello! visit  or email  multiple spaces.", got)
}

func TestApply_Empty(t *testing.T) {
	assert.Equal(t, "", Apply(Default(), ""))
	assert.Equal(t, "unchanged", Apply(nil, "unchanged"))
}
