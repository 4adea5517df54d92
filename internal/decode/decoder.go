// Package decode turns still images into barcode text.
package decode

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/datamatrix"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNotFound means no barcode could be located or read. It is not fatal.
var ErrNotFound = errors.New("no barcode found in image")

// Decoder runs a list of 2D readers over a hybrid-binarized image. Readers
// are built per call, so a Decoder may be shared between goroutines.
type Decoder struct {
	readers []func() gozxing.Reader
	hints   map[gozxing.DecodeHintType]interface{}
}

// NewDecoder returns a decoder for QR Code and Data Matrix symbols.
func NewDecoder() *Decoder {
	return &Decoder{
		readers: []func() gozxing.Reader{
			func() gozxing.Reader { return zxqr.NewQRCodeReader() },
			func() gozxing.Reader { return datamatrix.NewDataMatrixReader() },
		},
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode converts img to luminance and decodes it.
func (d *Decoder) Decode(img image.Image) (string, error) {
	return d.DecodeSource(NewLuminanceSource(img))
}

// DecodeSource decodes an existing luminance source. Any reader failure is
// reported as ErrNotFound.
func (d *Decoder) DecodeSource(src gozxing.LuminanceSource) (text string, err error) {
	if src.GetWidth() == 0 || src.GetHeight() == 0 {
		return "", ErrNotFound
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: reader panic: %v", ErrNotFound, r)
		}
	}()

	bmp, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(src))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var lastErr error
	for _, newReader := range d.readers {
		result, err := newReader().Decode(bmp, d.hints)
		if err == nil {
			return result.GetText(), nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("%w: %v", ErrNotFound, lastErr)
}

// LoadImage reads and decodes a PNG, JPEG or GIF asset.
func LoadImage(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
