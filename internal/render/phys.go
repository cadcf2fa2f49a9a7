package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
)

const inchesPerMeter = 1 / 0.0254

var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n")

	// ErrNotPNG indicates the encoder output does not start with an IHDR chunk.
	ErrNotPNG = errors.New("render: encoded image is not a PNG")
)

// withDPI inserts a pHYs chunk recording dpi directly after IHDR.
func withDPI(encoded []byte, dpi float64) ([]byte, error) {
	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	if len(encoded) < ihdrEnd || !bytes.Equal(encoded[:8], pngSignature) || string(encoded[12:16]) != "IHDR" {
		return nil, ErrNotPNG
	}
	ppm := uint32(math.Round(dpi * inchesPerMeter))

	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1 // unit: metre
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(encoded)+len(chunk))
	out = append(out, encoded[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, encoded[ihdrEnd:]...), nil
}
