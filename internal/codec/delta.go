package codec

import (
	"bytes"
	"encoding/binary"

	"github.com/argusvision/argus/internal/errors"
)

// Compress encodes target's raw pixels relative to source's, producing a
// self-describing stream the remote service reconstructs byte-for-byte.
// targetEncoded is the plain container-format payload (e.g. PNG) and
// serves as the fallback: it is returned unchanged when the source
// dimensions differ (block alignment is invalidated) or when the delta
// stream would not be smaller. Pure function; neither buffer is modified.
func Compress(target Frame, targetEncoded []byte, source Frame) ([]byte, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if len(targetEncoded) == 0 {
		return nil, errors.New(errors.CodeCodec, "encoded fallback buffer is empty")
	}
	if !target.SameDimensions(source) {
		return targetEncoded, nil
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(target.Pix)/BlockSize + 1)
	writeHeader(&buf, target)

	for off := 0; off < len(target.Pix); off += BlockSize {
		end := min(off+BlockSize, len(target.Pix))
		tb := target.Pix[off:end]
		if bytes.Equal(tb, source.Pix[off:end]) {
			buf.WriteByte(markerSkip)
			continue
		}
		buf.WriteByte(markerLiteral)
		buf.Write(tb)

		// Never transmit more bytes than the non-delta baseline.
		if buf.Len() >= len(targetEncoded) {
			return targetEncoded, nil
		}
	}

	if buf.Len() >= len(targetEncoded) {
		return targetEncoded, nil
	}
	return buf.Bytes(), nil
}

// Decompress is the reference decoder: it rebuilds the exact target frame
// from a delta stream and the source frame the stream was encoded against.
// The production decode path lives in the remote service; this one backs
// the round-trip tests and local verification.
func Decompress(data []byte, source Frame) (Frame, error) {
	if err := source.Validate(); err != nil {
		return Frame{}, err
	}
	hdr, rest, err := readHeader(data)
	if err != nil {
		return Frame{}, err
	}
	target := Frame{
		Pix:           make([]byte, hdr.Width*hdr.Height*hdr.BytesPerPixel),
		Width:         hdr.Width,
		Height:        hdr.Height,
		BytesPerPixel: hdr.BytesPerPixel,
	}
	if !target.SameDimensions(source) {
		return Frame{}, errors.Newf(errors.CodeCodec,
			"stream geometry %dx%d does not match source %dx%d",
			hdr.Width, hdr.Height, source.Width, source.Height)
	}

	pos := 0
	for off := 0; off < len(target.Pix); off += hdr.BlockSize {
		end := min(off+hdr.BlockSize, len(target.Pix))
		if pos >= len(rest) {
			return Frame{}, errors.New(errors.CodeCodec, "truncated delta stream")
		}
		marker := rest[pos]
		pos++
		switch marker {
		case markerSkip:
			copy(target.Pix[off:end], source.Pix[off:end])
		case markerLiteral:
			n := end - off
			if pos+n > len(rest) {
				return Frame{}, errors.New(errors.CodeCodec, "truncated literal block")
			}
			copy(target.Pix[off:end], rest[pos:pos+n])
			pos += n
		default:
			return Frame{}, errors.Newf(errors.CodeCodec, "unknown block marker 0x%02x", marker)
		}
	}
	if pos != len(rest) {
		return Frame{}, errors.Newf(errors.CodeCodec, "%d trailing bytes after final block", len(rest)-pos)
	}
	return target, nil
}

type header struct {
	BlockSize     int
	Width         int
	Height        int
	BytesPerPixel int
}

func writeHeader(buf *bytes.Buffer, f Frame) {
	buf.Write(magic[:])
	buf.WriteByte(Version)
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(BlockSize))
	buf.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], uint32(f.Width))
	buf.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], uint32(f.Height))
	buf.Write(u32[:])
	buf.WriteByte(byte(f.BytesPerPixel))
}

func readHeader(data []byte) (header, []byte, error) {
	if len(data) < headerSize {
		return header{}, nil, errors.New(errors.CodeCodec, "stream shorter than header")
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return header{}, nil, errors.New(errors.CodeCodec, "bad magic")
	}
	if data[4] != Version {
		return header{}, nil, errors.Newf(errors.CodeCodec, "unsupported stream version %d", data[4])
	}
	h := header{
		BlockSize:     int(binary.BigEndian.Uint32(data[5:9])),
		Width:         int(binary.BigEndian.Uint32(data[9:13])),
		Height:        int(binary.BigEndian.Uint32(data[13:17])),
		BytesPerPixel: int(data[17]),
	}
	if h.BlockSize <= 0 || h.Width <= 0 || h.Height <= 0 || h.BytesPerPixel <= 0 {
		return header{}, nil, errors.New(errors.CodeCodec, "invalid stream header")
	}
	return h, data[headerSize:], nil
}

// IsDelta reports whether data carries the delta stream magic, as opposed
// to a plain container-format payload.
func IsDelta(data []byte) bool {
	return len(data) >= len(magic) && bytes.Equal(data[:4], magic[:])
}
