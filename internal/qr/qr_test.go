package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG("http://localhost:4000/validar/6f9619ff-8b86-4d01-b42d-00cf4fc964ff")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, PixelWidth, img.Bounds().Dx())
	assert.Equal(t, PixelWidth, img.Bounds().Dy())
}

func TestEncodePNGDeterministic(t *testing.T) {
	a, err := EncodePNG("http://example.com/validar/x")
	require.NoError(t, err)
	b, err := EncodePNG("http://example.com/validar/x")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
