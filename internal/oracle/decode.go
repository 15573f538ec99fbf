package oracle

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
)

// Decoder recovers the payload of a rendered symbol. found is false when
// zero symbols were located in the image, which is distinct from a
// located symbol decoding to the wrong payload.
type Decoder interface {
	Decode(img image.Image) (text string, found bool, err error)
}

// ZXing decodes via the gozxing port of the ZXing QR reader, an
// implementation independent of both the reference and any candidate
// encoder.
type ZXing struct {
	reader gozxing.Reader
}

// NewZXing constructs the decoder.
func NewZXing() *ZXing {
	return &ZXing{reader: zxqr.NewQRCodeReader()}
}

// Decode locates and decodes a single QR symbol. The rendered raster has
// no quiet zone, so the reader is hinted that the image is the bare
// symbol (PURE_BARCODE).
func (z *ZXing) Decode(img image.Image) (string, bool, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false, err
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE: true,
	}
	result, err := z.reader.Decode(bmp, hints)
	if err != nil {
		if _, ok := err.(gozxing.NotFoundException); ok {
			return "", false, nil
		}
		return "", false, err
	}
	return result.GetText(), true, nil
}
