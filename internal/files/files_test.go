package files

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomNameAllowedTypes(t *testing.T) {
	tests := []struct {
		contentType string
		ext         string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/gif", ".gif"},
		{"application/pdf", ".pdf"},
	}

	for _, tt := range tests {
		name, err := RandomName(tt.contentType)
		require.NoError(t, err, tt.contentType)
		assert.True(t, strings.HasSuffix(name, tt.ext), "name %q", name)
		// 16 random bytes hex-encoded plus the extension.
		assert.Len(t, name, 32+len(tt.ext))
	}
}

func TestRandomNameRejectsOtherTypes(t *testing.T) {
	for _, ct := range []string{"", "text/html", "application/octet-stream"} {
		_, err := RandomName(ct)
		assert.Error(t, err, "content type %q", ct)
	}
}

func TestRandomNameUnique(t *testing.T) {
	a, err := RandomName("image/png")
	require.NoError(t, err)
	b, err := RandomName("image/png")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
