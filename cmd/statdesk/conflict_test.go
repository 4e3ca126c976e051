package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statdesk/pkg/types"
)

func TestParseConflict(t *testing.T) {
	for arg, want := range map[string]types.ConflictPolicy{
		"rename":    types.Rename,
		"overwrite": types.Overwrite,
		"skip":      types.Skip,
	} {
		got, err := parseConflict(arg)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseConflict("keep-both")
	assert.Error(t, err)
}
