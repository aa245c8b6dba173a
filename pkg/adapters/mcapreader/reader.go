// Package mcapreader provides a log container implementation backed by
// the MCAP file format, decoding ROS 2 sensor_msgs image messages from
// their CDR payloads.
package mcapreader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/foxglove/mcap/go/mcap"

	"github.com/user/mcap2video/pkg/ports"
)

// Recognized image message schemas.
const (
	schemaRawImage        = "sensor_msgs/msg/Image"
	schemaCompressedImage = "sensor_msgs/msg/CompressedImage"
)

// ErrUnsupportedMessageEncoding is returned for channels whose message
// encoding is not CDR.
var ErrUnsupportedMessageEncoding = errors.New("mcapreader: unsupported message encoding")

// Reader implements ports.Container over an MCAP file. Record iteration
// is forward-only; each Records call reopens the file from the start.
type Reader struct {
	path string

	mu   sync.Mutex
	live []*os.File
}

// Open validates that the file exists and creates a Reader for it.
func Open(path string) (*Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("mcapreader: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("mcapreader: %s is a directory", path)
	}
	return &Reader{path: path}, nil
}

// Channels returns the image-bearing channels declared in the container
// index.
func (r *Reader) Channels() ([]ports.Channel, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	defer f.Close()

	reader, err := mcap.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	defer reader.Close()

	info, err := reader.Info()
	if err != nil {
		return nil, fmt.Errorf("read container index: %w", err)
	}

	var channels []ports.Channel
	for id, ch := range info.Channels {
		schema := info.Schemas[ch.SchemaID]
		if schema == nil {
			continue
		}
		if schema.Name != schemaRawImage && schema.Name != schemaCompressedImage {
			continue
		}
		var count uint64
		if info.Statistics != nil {
			count = info.Statistics.ChannelMessageCounts[id]
		}
		channels = append(channels, ports.Channel{
			Topic:        ch.Topic,
			SchemaName:   schema.Name,
			MessageCount: count,
		})
	}
	return channels, nil
}

// Records returns an iterator over the records of the given topic in
// container read order.
func (r *Reader) Records(topic string) (ports.RecordIterator, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	reader, err := mcap.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read container: %w", err)
	}

	it, err := reader.Messages(
		mcap.WithTopics([]string{topic}),
		mcap.UsingIndex(false),
	)
	if err != nil {
		reader.Close()
		f.Close()
		return nil, fmt.Errorf("read messages of %s: %w", topic, err)
	}

	r.mu.Lock()
	r.live = append(r.live, f)
	r.mu.Unlock()

	return &recordIterator{owner: r, file: f, reader: reader, it: it}, nil
}

// Close releases any file handles still held by live iterators.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for _, f := range r.live {
		if err := f.Close(); err != nil && firstErr == nil && !errors.Is(err, os.ErrClosed) {
			firstErr = err
		}
	}
	r.live = nil
	return firstErr
}

type recordIterator struct {
	owner  *Reader
	file   *os.File
	reader *mcap.Reader
	it     mcap.MessageIterator
	buf    []byte
	done   bool
}

// Next returns the next image record, releasing the underlying file on
// EOF or error.
func (ri *recordIterator) Next() (ports.ImageRecord, error) {
	if ri.done {
		return ports.ImageRecord{}, io.EOF
	}

	schema, channel, message, err := ri.it.Next(ri.buf)
	if err != nil {
		ri.finish()
		if errors.Is(err, io.EOF) {
			return ports.ImageRecord{}, io.EOF
		}
		return ports.ImageRecord{}, fmt.Errorf("read message: %w", err)
	}

	rec, err := toImageRecord(schema, channel, message)
	if err != nil {
		ri.finish()
		return ports.ImageRecord{}, err
	}
	return rec, nil
}

func (ri *recordIterator) finish() {
	if ri.done {
		return
	}
	ri.done = true
	ri.reader.Close()
	ri.file.Close()
}

// toImageRecord deserializes one MCAP message into an image record.
// Payload slices are copied out of the CDR buffer so the record owns its
// data.
func toImageRecord(schema *mcap.Schema, channel *mcap.Channel, message *mcap.Message) (ports.ImageRecord, error) {
	rec := ports.ImageRecord{
		Topic:     channel.Topic,
		LogTimeNs: message.LogTime,
	}

	if enc := strings.ToLower(channel.MessageEncoding); enc != "cdr" {
		return rec, fmt.Errorf("%w: %q on %s", ErrUnsupportedMessageEncoding, channel.MessageEncoding, channel.Topic)
	}

	switch schema.Name {
	case schemaRawImage:
		msg, err := parseRawImage(message.Data)
		if err != nil {
			return rec, fmt.Errorf("parse %s message on %s: %w", schema.Name, channel.Topic, err)
		}
		rec.Encoding = strings.ToLower(msg.encoding)
		rec.Width = msg.width
		rec.Height = msg.height
		rec.Step = msg.step
		rec.Data = append([]byte(nil), msg.data...)
	case schemaCompressedImage:
		msg, err := parseCompressedImage(message.Data)
		if err != nil {
			return rec, fmt.Errorf("parse %s message on %s: %w", schema.Name, channel.Topic, err)
		}
		rec.Compressed = true
		rec.Encoding = strings.ToLower(msg.format)
		rec.Data = append([]byte(nil), msg.data...)
	default:
		return rec, fmt.Errorf("mcapreader: unexpected schema %q on %s", schema.Name, channel.Topic)
	}

	return rec, nil
}

// Ensure Reader implements ports.Container
var _ ports.Container = (*Reader)(nil)
