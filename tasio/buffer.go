// Package tasio - byte-buffer interfaces and the in-memory implementation.
package tasio

import (
	"encoding/binary"
	"errors"
	"math"
)

// Sentinel errors for buffer operations.
var (
	// ErrShortBuffer indicates a read past the end of the underlying bytes.
	ErrShortBuffer = errors.New("tasio: read past end of buffer")

	// ErrStringTooLong indicates a string whose length prefix exceeds the
	// remaining buffer; the stream is considered corrupt.
	ErrStringTooLong = errors.New("tasio: string length exceeds remaining buffer")
)

// Writer is the abstract sink for field-by-field binary serialization.
// Implementations must preserve write order; the layout of any serialized
// object is exactly its sequence of field writes.
type Writer interface {
	WriteBytes(p []byte)
	WriteBool(v bool)
	WriteUint32(v uint32)
	WriteInt32(v int32)
	WriteFloat32(v float32)
	WriteFloat64(v float64)
	WriteString(s string)
}

// Reader is the symmetric source. A method reports ErrShortBuffer when fewer
// bytes remain than it needs (ReadString reports ErrStringTooLong when its
// length prefix exceeds the rest). A failed read does not poison the
// source: a later, smaller read can still succeed, so callers check the
// error of every read.
type Reader interface {
	ReadBytes(n int) ([]byte, error)
	ReadBool() (bool, error)
	ReadUint32() (uint32, error)
	ReadInt32() (int32, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)
	ReadString() (string, error)
}

// Buffer is a growable in-memory byte buffer implementing Writer and Reader.
// Writes append at the end; reads consume from the front. The zero value is
// ready to use.
type Buffer struct {
	buf []byte
	off int
}

// NewBuffer returns an empty Buffer with the given capacity hint.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// FromBytes wraps existing bytes for reading. The slice is not copied.
func FromBytes(p []byte) *Buffer {
	return &Buffer{buf: p}
}

// Bytes returns the unread portion of the buffer.
func (b *Buffer) Bytes() []byte { return b.buf[b.off:] }

// Len reports the number of unread bytes.
func (b *Buffer) Len() int { return len(b.buf) - b.off }

// Reset drops all content and rewinds the read offset.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// WriteBytes appends p verbatim.
func (b *Buffer) WriteBytes(p []byte) { b.buf = append(b.buf, p...) }

// WriteBool appends a single 0/1 byte.
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.buf = append(b.buf, 1)
	} else {
		b.buf = append(b.buf, 0)
	}
}

// WriteUint32 appends v little-endian.
func (b *Buffer) WriteUint32(v uint32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
}

// WriteInt32 appends v little-endian (two's complement).
func (b *Buffer) WriteInt32(v int32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
}

// WriteFloat32 appends the IEEE-754 bits of v little-endian.
func (b *Buffer) WriteFloat32(v float32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, math.Float32bits(v))
}

// WriteFloat64 appends the IEEE-754 bits of v little-endian.
func (b *Buffer) WriteFloat64(v float64) {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, math.Float64bits(v))
}

// WriteString appends a uint32 length prefix followed by the raw bytes.
func (b *Buffer) WriteString(s string) {
	b.WriteUint32(uint32(len(s)))
	b.buf = append(b.buf, s...)
}

// ReadBytes consumes and returns the next n bytes.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.Len() < n {
		return nil, ErrShortBuffer
	}
	out := b.buf[b.off : b.off+n]
	b.off += n

	return out, nil
}

// ReadBool consumes one byte; any non-zero value reads as true.
func (b *Buffer) ReadBool() (bool, error) {
	p, err := b.ReadBytes(1)
	if err != nil {
		return false, err
	}

	return p[0] != 0, nil
}

// ReadUint32 consumes four bytes little-endian.
func (b *Buffer) ReadUint32() (uint32, error) {
	p, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(p), nil
}

// ReadInt32 consumes four bytes little-endian.
func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()

	return int32(v), err
}

// ReadFloat32 consumes four bytes little-endian.
func (b *Buffer) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()

	return math.Float32frombits(v), err
}

// ReadFloat64 consumes eight bytes little-endian.
func (b *Buffer) ReadFloat64() (float64, error) {
	p, err := b.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(p)), nil
}

// ReadString consumes a uint32 length prefix and that many bytes.
func (b *Buffer) ReadString() (string, error) {
	n, err := b.ReadUint32()
	if err != nil {
		return "", err
	}
	if int(n) > b.Len() {
		return "", ErrStringTooLong
	}
	p, err := b.ReadBytes(int(n))
	if err != nil {
		return "", err
	}

	return string(p), nil
}
