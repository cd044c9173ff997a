package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
table "high-stakes" {
  variant     = "omaha-hilo"
  small_blind = 25
  big_blind   = 50
  pot_limit   = true
  players     = 4
  stack       = 10000
  hands       = 500
}

table "micro" {
  small_blind = 1
  big_blind   = 2
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, config.Tables, 2)

	high := config.Tables[0]
	assert.Equal(t, "high-stakes", high.Name)
	assert.Equal(t, "omaha-hilo", high.Variant)
	assert.Equal(t, 25, high.SmallBlind)
	assert.Equal(t, 50, high.BigBlind)
	assert.True(t, high.PotLimit)
	assert.Equal(t, 4, high.Players)

	// Unset fields pick up defaults
	micro := config.Tables[1]
	assert.Equal(t, "holdem", micro.Variant)
	assert.Equal(t, 6, micro.Players)
	assert.Equal(t, 200, micro.Stack)
	assert.Equal(t, 10000, micro.Hands)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.hcl")
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no tables",
			content: ``,
		},
		{
			name: "inverted blinds",
			content: `
table "bad" {
  small_blind = 50
  big_blind   = 10
}
`,
		},
		{
			name: "unknown variant",
			content: `
table "bad" {
  variant     = "stud"
  small_blind = 5
  big_blind   = 10
}
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}
