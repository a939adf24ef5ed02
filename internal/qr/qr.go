// Package qr renders validation URLs as scannable PNG images.
package qr

import qrcode "github.com/skip2/go-qrcode"

// PixelWidth is the edge length of every generated image.
const PixelWidth = 600

// EncodePNG encodes content into a PNG QR image with medium error correction
// and a fixed pixel width. The image encodes the content exactly as given.
func EncodePNG(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, PixelWidth)
}
