// Package mobx implements the portable containers used to move moby
// models between level files: the .mobx single-model record and the
// .lvz level working copy. Both carry one compressed CBOR payload
// behind a small fixed header.
package mobx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

const (
	modelMagic = "MOBX"
	levelMagic = "MLVZ"

	// formatVersion is the container layout version, bumped on any
	// incompatible header or payload change.
	formatVersion = 1

	// headerSize covers magic (4), version (1), compression tag (1),
	// two reserved bytes and the uncompressed payload length (4).
	headerSize = 12
)

// Container errors.
var (
	ErrNilModel           = errors.New("nil model")
	ErrNilLevel           = errors.New("nil level")
	ErrNoSuchModel        = errors.New("model id not in level")
	ErrModelExists        = errors.New("model id already present")
	ErrBadMagic           = errors.New("not a mobx container")
	ErrUnsupportedVersion = errors.New("unsupported container version")
	ErrTruncated          = errors.New("truncated container")
	ErrCorruptPayload     = errors.New("corrupt container payload")
)

// writeContainer compresses and frames one payload. Nothing of a
// failed write survives on disk.
func writeContainer(path, magic string, tag CompressionTag, payload []byte) error {
	compressed, err := compress(payload, tag)
	if errors.Is(err, errIncompressible) {
		compressed, tag = payload, CompressionNone
	} else if err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}

	header := make([]byte, headerSize)
	copy(header[0:4], magic)
	header[4] = formatVersion
	header[5] = byte(tag)
	binary.LittleEndian.PutUint32(header[8:], uint32(len(payload)))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.Write(header); err == nil {
		_, err = f.Write(compressed)
	}
	if err == nil {
		err = f.Close()
	} else {
		f.Close()
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// readContainer reads one container file and returns its decompressed
// payload after checking the frame.
func readContainer(path, magic string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading container: %w", err)
	}
	return decodeContainer(data, magic, path)
}

func decodeContainer(data []byte, magic, path string) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %s", ErrTruncated, path)
	}
	if string(data[0:4]) != magic {
		return nil, fmt.Errorf("%w: %s", ErrBadMagic, path)
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: %s is version %d", ErrUnsupportedVersion, path, data[4])
	}

	tag := CompressionTag(data[5])
	rawLen := int(binary.LittleEndian.Uint32(data[8:]))

	payload, err := decompress(data[headerSize:], tag, rawLen)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return payload, nil
}
