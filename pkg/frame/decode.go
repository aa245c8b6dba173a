package frame

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Compressed records carry JPEG or PNG payloads.
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/user/mcap2video/pkg/ports"
)

var (
	// ErrUnsupportedEncoding is returned for encoding tags outside the
	// supported set (rgb8, bgr8, compressed).
	ErrUnsupportedEncoding = errors.New("frame: unsupported encoding")

	// ErrShortPayload is returned when a raw payload is smaller than the
	// size implied by the declared width, height and step.
	ErrShortPayload = errors.New("frame: payload shorter than declared dimensions")
)

// Encoding identifies how a record's payload is decoded. The set is
// closed: one decode path per variant, resolved once per record.
type Encoding int

const (
	// EncodingUnknown marks records the decoder cannot handle.
	EncodingUnknown Encoding = iota
	// EncodingRGB8 is a packed 3-byte-per-pixel layout already in
	// canonical order.
	EncodingRGB8
	// EncodingBGR8 is a packed 3-byte-per-pixel layout with channels 0
	// and 2 swapped relative to canonical order.
	EncodingBGR8
	// EncodingCompressed is a single compressed image payload.
	EncodingCompressed
)

// ParseEncoding maps a record onto its decode variant.
func ParseEncoding(rec ports.ImageRecord) Encoding {
	if rec.Compressed {
		return EncodingCompressed
	}
	switch rec.Encoding {
	case "rgb8":
		return EncodingRGB8
	case "bgr8":
		return EncodingBGR8
	default:
		return EncodingUnknown
	}
}

// Decode converts one stored record into a Frame. A failure aborts the
// conversion: a skipped frame would desynchronize the timestamp-to-frame
// ordering, so errors are propagated, never swallowed.
func Decode(rec ports.ImageRecord) (*Frame, error) {
	switch ParseEncoding(rec) {
	case EncodingRGB8:
		return decodeRaw(rec, false)
	case EncodingBGR8:
		return decodeRaw(rec, true)
	case EncodingCompressed:
		return decodeCompressed(rec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, rec.Encoding)
	}
}

// decodeRaw copies a packed 3-channel payload into a frame, dropping any
// row padding. When swap is true, channels 0 and 2 are exchanged per
// pixel. The swap is a pure data transformation, not a color-space
// conversion, and it is an involution.
func decodeRaw(rec ports.ImageRecord, swap bool) (*Frame, error) {
	width := int(rec.Width)
	height := int(rec.Height)
	step := int(rec.Step)

	rowBytes := width * bytesPerPixel
	if step < rowBytes {
		return nil, fmt.Errorf("%w: step %d < %d bytes per row", ErrShortPayload, step, rowBytes)
	}
	if len(rec.Data) < height*step {
		return nil, fmt.Errorf("%w: got %d bytes, need %d (%dx%d step %d)",
			ErrShortPayload, len(rec.Data), height*step, width, height, step)
	}

	pix := make([]byte, width*height*bytesPerPixel)
	for y := 0; y < height; y++ {
		copy(pix[y*rowBytes:(y+1)*rowBytes], rec.Data[y*step:y*step+rowBytes])
	}
	if swap {
		swapRB(pix)
	}

	return &Frame{Width: width, Height: height, Pix: pix}, nil
}

// decodeCompressed hands the payload to the image codec and takes its
// output verbatim as canonical order. Compressed frames bypass the
// channel swap entirely: the codec is the sole authority on pixel order
// for compressed input, whatever the source color origin was.
func decodeCompressed(rec ports.ImageRecord) (*Frame, error) {
	img, _, err := image.Decode(bytes.NewReader(rec.Data))
	if err != nil {
		return nil, fmt.Errorf("frame: decode compressed payload: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)
	}

	pix := make([]byte, width*height*bytesPerPixel)
	di := 0
	for y := 0; y < height; y++ {
		si := y * rgba.Stride
		for x := 0; x < width; x++ {
			pix[di] = rgba.Pix[si]
			pix[di+1] = rgba.Pix[si+1]
			pix[di+2] = rgba.Pix[si+2]
			di += bytesPerPixel
			si += 4
		}
	}

	return &Frame{Width: width, Height: height, Pix: pix}, nil
}

// swapRB exchanges channels 0 and 2 of every pixel in place.
func swapRB(pix []byte) {
	for i := 0; i+2 < len(pix); i += bytesPerPixel {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
