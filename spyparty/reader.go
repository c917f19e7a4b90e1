package spyparty

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// reader reads little endian values off a stream and keeps track of how far in it is so
// errors can point at the exact spot things went wrong.
type reader struct {
	r   io.Reader
	off int64
	buf [16]byte
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

func (r *reader) fill(field string, b []byte) error {
	start := r.off
	n, err := io.ReadFull(r.r, b)
	r.off += int64(n)
	if err != nil {
		return &ReadError{Field: field, Offset: start, Err: err}
	}
	return nil
}

func (r *reader) bytes(field string, n int) ([]byte, error) {
	b := make([]byte, n)
	if err := r.fill(field, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *reader) skip(field string, n int) error {
	_, err := r.bytes(field, n)
	return err
}

func (r *reader) u8(field string) (uint8, error) {
	if err := r.fill(field, r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

func (r *reader) u16(field string) (uint16, error) {
	if err := r.fill(field, r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

func (r *reader) u32(field string) (uint32, error) {
	if err := r.fill(field, r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

func (r *reader) f32(field string) (float32, error) {
	v, err := r.u32(field)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// u128 returns the raw 16 bytes; there's no native 128 bit integer so GameID does the
// interpreting.
func (r *reader) u128(field string) ([16]byte, error) {
	var v [16]byte
	if err := r.fill(field, v[:]); err != nil {
		return v, err
	}
	return v, nil
}

func (r *reader) str(field string, n int) (string, error) {
	start := r.off
	b, err := r.bytes(field, n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &StringError{Field: field, Offset: start, Index: firstInvalid(b)}
	}
	return string(b), nil
}

func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
