package mcapreader

// ROS 2 sensor_msgs message bodies, deserialized from CDR. Only the
// fields the conversion needs are kept.

// rawImage mirrors sensor_msgs/msg/Image.
type rawImage struct {
	height   uint32
	width    uint32
	encoding string
	step     uint32
	data     []byte
}

// compressedImage mirrors sensor_msgs/msg/CompressedImage.
type compressedImage struct {
	format string
	data   []byte
}

// skipHeader consumes a std_msgs/msg/Header: builtin_interfaces/Time
// stamp (int32 sec, uint32 nanosec) and string frame_id.
func skipHeader(d *cdrDecoder) error {
	if _, err := d.int32(); err != nil {
		return err
	}
	if _, err := d.uint32(); err != nil {
		return err
	}
	_, err := d.string()
	return err
}

func parseRawImage(payload []byte) (rawImage, error) {
	var msg rawImage

	d, err := newCDRDecoder(payload)
	if err != nil {
		return msg, err
	}
	if err := skipHeader(d); err != nil {
		return msg, err
	}
	if msg.height, err = d.uint32(); err != nil {
		return msg, err
	}
	if msg.width, err = d.uint32(); err != nil {
		return msg, err
	}
	if msg.encoding, err = d.string(); err != nil {
		return msg, err
	}
	// is_bigendian flag: pixel data is byte-oriented for the supported
	// encodings, so the flag is read and ignored.
	if _, err = d.uint8(); err != nil {
		return msg, err
	}
	if msg.step, err = d.uint32(); err != nil {
		return msg, err
	}
	if msg.data, err = d.byteSeq(); err != nil {
		return msg, err
	}
	return msg, nil
}

func parseCompressedImage(payload []byte) (compressedImage, error) {
	var msg compressedImage

	d, err := newCDRDecoder(payload)
	if err != nil {
		return msg, err
	}
	if err := skipHeader(d); err != nil {
		return msg, err
	}
	if msg.format, err = d.string(); err != nil {
		return msg, err
	}
	if msg.data, err = d.byteSeq(); err != nil {
		return msg, err
	}
	return msg, nil
}
