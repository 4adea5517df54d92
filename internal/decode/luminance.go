package decode

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/makiuchi-d/gozxing"
)

// Luminance returns the weighted brightness 0.299R + 0.587G + 0.114B,
// truncated. Integer weights keep pure white at 255.
func Luminance(r, g, b uint8) byte {
	return byte((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
}

// LuminanceSource is a single-channel view over an image, usable by gozxing
// binarizers. Cropped sources share the parent's matrix.
type LuminanceSource struct {
	data       []byte
	dataWidth  int
	dataHeight int
	left, top  int
	width      int
	height     int
}

var _ gozxing.LuminanceSource = (*LuminanceSource)(nil)

// NewLuminanceSource converts img to a luminance matrix. Alpha is ignored.
func NewLuminanceSource(img image.Image) *LuminanceSource {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]byte, w*h)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data[i] = Luminance(c.R, c.G, c.B)
			i++
		}
	}
	return NewLuminanceSourceFromMatrix(data, w, h)
}

// NewLuminanceSourceFromMatrix wraps a row-major width*height luminance matrix.
func NewLuminanceSourceFromMatrix(data []byte, width, height int) *LuminanceSource {
	return &LuminanceSource{
		data:       data,
		dataWidth:  width,
		dataHeight: height,
		width:      width,
		height:     height,
	}
}

func (s *LuminanceSource) GetWidth() int  { return s.width }
func (s *LuminanceSource) GetHeight() int { return s.height }

// GetRow copies row y into row, allocating when row is too short.
func (s *LuminanceSource) GetRow(y int, row []byte) ([]byte, error) {
	if y < 0 || y >= s.height {
		return nil, fmt.Errorf("requested row is outside the image: %d", y)
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	offset := (y+s.top)*s.dataWidth + s.left
	copy(row, s.data[offset:offset+s.width])
	return row, nil
}

// GetMatrix returns the luminance values of the visible region, row-major.
func (s *LuminanceSource) GetMatrix() []byte {
	if s.left == 0 && s.top == 0 && s.width == s.dataWidth && s.height == s.dataHeight {
		return s.data
	}
	matrix := make([]byte, s.width*s.height)
	for y := 0; y < s.height; y++ {
		offset := (y+s.top)*s.dataWidth + s.left
		copy(matrix[y*s.width:(y+1)*s.width], s.data[offset:offset+s.width])
	}
	return matrix
}

func (s *LuminanceSource) IsCropSupported() bool { return true }

// Crop returns a view of the given rectangle, relative to this source.
func (s *LuminanceSource) Crop(left, top, width, height int) (gozxing.LuminanceSource, error) {
	if left < 0 || top < 0 || width < 0 || height < 0 || left+width > s.width || top+height > s.height {
		return nil, errors.New("crop rectangle does not fit within image data")
	}
	return &LuminanceSource{
		data:       s.data,
		dataWidth:  s.dataWidth,
		dataHeight: s.dataHeight,
		left:       s.left + left,
		top:        s.top + top,
		width:      width,
		height:     height,
	}, nil
}

// Invert returns the source unchanged. Dark-on-light codes never need it;
// inverted (light-on-dark) badges will not decode.
func (s *LuminanceSource) Invert() gozxing.LuminanceSource { return s }

func (s *LuminanceSource) IsRotateSupported() bool { return false }

func (s *LuminanceSource) RotateCounterClockwise() (gozxing.LuminanceSource, error) {
	return nil, errors.New("rotation is not supported by this luminance source")
}

func (s *LuminanceSource) RotateCounterClockwise45() (gozxing.LuminanceSource, error) {
	return nil, errors.New("rotation is not supported by this luminance source")
}

func (s *LuminanceSource) String() string {
	return fmt.Sprintf("LuminanceSource(%dx%d+%d+%d)", s.width, s.height, s.left, s.top)
}
