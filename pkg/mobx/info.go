package mobx

import (
	"fmt"
	"os"
)

// Info summarizes a container file without merging it anywhere.
type Info struct {
	Kind            string // "model" or "level"
	Version         uint8
	Codec           CompressionTag
	PayloadBytes    int
	CompressedBytes int

	// Model container fields.
	ModelID    int32
	Name       string
	Origin     string
	Textures   int
	Configs    int
	Animations int
	Bones      int

	// Level container fields.
	Models int
	Mobys  int
	PVars  int
}

// Inspect reads a container of either kind and returns its summary.
func Inspect(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading container: %w", err)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %s", ErrTruncated, path)
	}

	magic := string(data[0:4])
	switch magic {
	case modelMagic, levelMagic:
	default:
		return nil, fmt.Errorf("%w: %s", ErrBadMagic, path)
	}

	payload, err := decodeContainer(data, magic, path)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Version:         data[4],
		Codec:           CompressionTag(data[5]),
		PayloadBytes:    len(payload),
		CompressedBytes: len(data) - headerSize,
	}

	if magic == modelMagic {
		var rec modelRecord
		if err := decMode.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPayload, path, err)
		}
		info.Kind = "model"
		info.ModelID = rec.ID
		info.Name = rec.Name
		info.Origin = rec.Origin
		info.Textures = len(rec.Textures)
		info.Configs = len(rec.TextureConfigs) + len(rec.LowDetailTextureConfigs)
		info.Animations = len(rec.Animations)
		info.Bones = len(rec.BoneMatrices)
		return info, nil
	}

	var rec levelRecord
	if err := decMode.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPayload, path, err)
	}
	info.Kind = "level"
	info.Name = rec.Name
	info.Models = len(rec.Models)
	info.Textures = len(rec.Textures)
	info.Mobys = len(rec.Mobys)
	info.PVars = len(rec.PVarTable)
	return info, nil
}
