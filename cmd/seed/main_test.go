package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
groups:
  - name: Fitness
    color: bg-orange-500
  - name: Family
    color: bg-pink-500
`), 0o644))

	groups, err := loadGroups(path)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Fitness", groups[0].Name)
	assert.Equal(t, "bg-pink-500", groups[1].Color)
}

func TestLoadGroupsDefaults(t *testing.T) {
	groups, err := loadGroups("")
	require.NoError(t, err)
	assert.Nil(t, groups)
}

func TestLoadGroupsRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups: []\n"), 0o644))

	_, err := loadGroups(path)
	assert.Error(t, err)
}
