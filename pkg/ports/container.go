package ports

// Channel describes one image-bearing topic found in a log container.
// It is read-only once returned from a scan.
type Channel struct {
	// Topic is the channel identifier within the container.
	Topic string

	// SchemaName is the declared message schema name
	// (e.g. sensor_msgs/msg/Image).
	SchemaName string

	// MessageCount is the number of records on this channel,
	// 0 when the container carries no statistics.
	MessageCount uint64
}

// ImageRecord is one timestamped image payload read from a container.
// It is produced by the container reader and consumed exactly once.
type ImageRecord struct {
	// Topic is the channel the record belongs to.
	Topic string

	// LogTimeNs is the capture timestamp in nanoseconds.
	LogTimeNs uint64

	// Encoding is the declared pixel encoding tag (rgb8, bgr8) for raw
	// images; for compressed records it carries the declared format
	// (informational only, the codec output is authoritative).
	Encoding string

	// Compressed marks records whose Data is a compressed single image
	// (JPEG or PNG) rather than a packed pixel buffer.
	Compressed bool

	// Width and Height are the declared dimensions in pixels.
	// Zero for compressed records, whose dimensions come from the codec.
	Width  uint32
	Height uint32

	// Step is the declared row stride in bytes for raw images.
	Step uint32

	// Data is the raw payload.
	Data []byte
}

// RecordIterator yields the records of one channel in container read
// order. Next returns io.EOF after the last record.
type RecordIterator interface {
	Next() (ImageRecord, error)
}

// Container abstracts a structured log container holding image records.
type Container interface {
	// Channels returns the channels whose schema is a recognized image
	// message type, deduplicated by topic.
	Channels() ([]Channel, error)

	// Records returns an iterator over the records of the given topic.
	// Iteration is finite and forward-only; calling Records again
	// reopens the container from the start.
	Records(topic string) (RecordIterator, error)

	// Close releases the container handle.
	Close() error
}
