package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/2", false},
		{"empty", "", true},
		{"wrong-scheme", "http://localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseURL(tt.url)
			assert.Equal(t, tt.wantErr, err != nil, "ParseURL(%q) error = %v", tt.url, err)
		})
	}
}

func TestParseURL_ReadsDatabase(t *testing.T) {
	opts, err := ParseURL("redis://localhost:6379/2")
	require.NoError(t, err)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "localhost:6379", opts.Addr)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "tradeskill:progress:ana:completions", Key(DefaultNamespace, "progress", "ana", "completions"))

	c := &Cache{namespace: "test"}
	assert.Equal(t, "test", c.Namespace())
}

func TestNew_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	_, err := New(t.Context(), "redis://localhost:59999")
	assert.Error(t, err)
}
