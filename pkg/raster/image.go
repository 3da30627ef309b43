// Package raster converts monochrome bitmaps into the per-line raster
// commands P-touch printers consume.
//
// Labels print rotated: the printer advances along the image's x axis
// and each raster line covers one image column over the full printable
// height of the tape.
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a monochrome bitmap, bit-packed row-major with the most
// significant bit first within each byte. Rows are padded to a byte
// boundary. A set bit is a printed (black) pixel.
type Image struct {
	width  int
	height int
	stride int
	bits   []byte
}

// NewImage creates a cleared bitmap of the given dimensions.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	stride := (width + 7) / 8
	return &Image{
		width:  width,
		height: height,
		stride: stride,
		bits:   make([]byte, stride*height),
	}, nil
}

// NewImageFromBits wraps an existing bit-packed buffer. The buffer must
// hold at least ceil(width/8)*height bytes and is borrowed, not copied.
func NewImageFromBits(bits []byte, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	stride := (width + 7) / 8
	if len(bits) < stride*height {
		return nil, fmt.Errorf("bitmap buffer too small: %d bytes for %dx%d", len(bits), width, height)
	}
	return &Image{width: width, height: height, stride: stride, bits: bits}, nil
}

// Threshold converts an image.Image to a bitmap. Pixels darker than the
// cutoff luminance (0-255) become printed pixels.
func Threshold(src image.Image, cutoff uint8) (*Image, error) {
	b := src.Bounds()
	img, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if g.Y < cutoff {
				img.SetPixel(x, y, true)
			}
		}
	}
	return img, nil
}

// Width returns the bitmap width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the bitmap height in pixels.
func (m *Image) Height() int { return m.height }

// Stride returns the number of bytes per row.
func (m *Image) Stride() int { return m.stride }

// SetPixel sets or clears the pixel at (x, y). Out-of-bounds
// coordinates are ignored.
func (m *Image) SetPixel(x, y int, on bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	idx := y*m.stride + x/8
	mask := byte(0x80 >> (x % 8))
	if on {
		m.bits[idx] |= mask
	} else {
		m.bits[idx] &^= mask
	}
}

// Pixel reports whether the pixel at (x, y) is set. Out-of-bounds
// coordinates read as unset.
func (m *Image) Pixel(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.stride+x/8]&(0x80>>(x%8)) != 0
}

// FillRect sets every pixel in the given rectangle.
func (m *Image) FillRect(x, y, w, h int, on bool) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			m.SetPixel(x+dx, y+dy, on)
		}
	}
}

// Invert flips every pixel.
func (m *Image) Invert() {
	for i := range m.bits {
		m.bits[i] = ^m.bits[i]
	}
	// Clear padding bits past the row end so Pixel stays consistent.
	if pad := m.stride*8 - m.width; pad > 0 {
		mask := byte(0xFF << pad)
		for y := 0; y < m.height; y++ {
			m.bits[y*m.stride+m.stride-1] &= mask
		}
	}
}
