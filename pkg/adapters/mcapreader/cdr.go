package mcapreader

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// errTruncatedPayload is returned when a CDR payload ends before a
// declared field.
var errTruncatedPayload = errors.New("mcapreader: truncated CDR payload")

// cdrDecoder reads an XCDR-encapsulated ROS 2 payload. The first four
// bytes are the encapsulation header; byte 1 selects the byte order.
// Primitive fields are aligned to their own size relative to the start
// of the serialized body.
type cdrDecoder struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

func newCDRDecoder(payload []byte) (*cdrDecoder, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: %d-byte payload has no encapsulation header", errTruncatedPayload, len(payload))
	}
	var order binary.ByteOrder = binary.BigEndian
	if payload[1]&0x01 == 0x01 {
		order = binary.LittleEndian
	}
	return &cdrDecoder{buf: payload[4:], order: order}, nil
}

func (d *cdrDecoder) align(n int) {
	if rem := d.off % n; rem != 0 {
		d.off += n - rem
	}
}

func (d *cdrDecoder) need(n int) error {
	if d.off+n > len(d.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d of %d", errTruncatedPayload, n, d.off, len(d.buf))
	}
	return nil
}

func (d *cdrDecoder) uint8() (uint8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.buf[d.off]
	d.off++
	return v, nil
}

func (d *cdrDecoder) uint32() (uint32, error) {
	d.align(4)
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := d.order.Uint32(d.buf[d.off:])
	d.off += 4
	return v, nil
}

func (d *cdrDecoder) int32() (int32, error) {
	v, err := d.uint32()
	return int32(v), err
}

// string reads a CDR string: a uint32 length that counts the trailing
// NUL, followed by the bytes.
func (d *cdrDecoder) string() (string, error) {
	n, err := d.uint32()
	if err != nil {
		return "", err
	}
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	b := d.buf[d.off : d.off+int(n)]
	d.off += int(n)
	if len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b), nil
}

// byteSeq reads a uint8 sequence: a uint32 element count followed by the
// bytes. The returned slice aliases the payload; callers copy if they
// retain it past the record's lifetime.
func (d *cdrDecoder) byteSeq() ([]byte, error) {
	n, err := d.uint32()
	if err != nil {
		return nil, err
	}
	if err := d.need(int(n)); err != nil {
		return nil, err
	}
	b := d.buf[d.off : d.off+int(n)]
	d.off += int(n)
	return b, nil
}
