package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"product-12-1700000000000.png", true},
		{"product-12-1700000000000.JPG", true},
		{"product-12-1700000000000.webp", true},
		{"product-12-1700000000000.gif", false},
		{"../../etc/passwd", false},
		{"product-12-1700000000000.png/../x", false},
		{"logo.png", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidFilename(tt.name), tt.name)
	}
}

func TestAllowedContentType(t *testing.T) {
	assert.True(t, AllowedContentType("image/png"))
	assert.True(t, AllowedContentType("image/jpeg"))
	assert.True(t, AllowedContentType("image/webp"))
	assert.False(t, AllowedContentType("image/gif"))
	assert.False(t, AllowedContentType("text/html"))
}

func TestFilenameIsValid(t *testing.T) {
	name := Filename(42, "image/png")
	assert.True(t, ValidFilename(name))
	assert.Equal(t, "image/png", ContentTypeFor(name))
}

func TestImageStoreRoundTrip(t *testing.T) {
	store, err := NewImageStore(afero.NewMemMapFs(), "images")
	require.NoError(t, err)

	name := Filename(1, "image/jpeg")
	require.NoError(t, store.Save(name, strings.NewReader("fake-image-bytes")))

	file, err := store.Open(name)
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, "fake-image-bytes", string(data))

	require.NoError(t, store.Delete(name))
	_, err = store.Open(name)
	assert.Error(t, err)

	// Deleting a missing file is fine.
	assert.NoError(t, store.Delete(name))
}
