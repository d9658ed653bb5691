package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageDataURL(t *testing.T) {
	assert.Nil(t, ImageDataURL(nil))
	assert.Nil(t, ImageDataURL([]byte{}))

	url := ImageDataURL([]byte("png-bytes"))
	require.NotNil(t, url)
	assert.Equal(t, "data:image/png;base64,cG5nLWJ5dGVz", *url)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "dana@example.com", NormalizeEmail("  Dana@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
