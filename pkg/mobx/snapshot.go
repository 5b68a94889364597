package mobx

import (
	"fmt"

	"github.com/ratchetmods/mobyswap/pkg/level"
)

// levelRecord is the CBOR payload of a .lvz level working copy.
// Snapshots are this tool's own format for carrying a collection
// between sessions; they are not engine files.
type levelRecord struct {
	Name      string          `cbor:"name"`
	Models    []modelRecord   `cbor:"models"`
	Textures  []textureRecord `cbor:"textures"`
	Mobys     []mobyRecord    `cbor:"mobys"`
	ModelIDs  []int32         `cbor:"model_ids"`
	PVarTable [][]byte        `cbor:"pvar_table"`
}

type mobyRecord struct {
	ID      int32 `cbor:"id"`
	ModelID int32 `cbor:"model"`

	Position [3]float32 `cbor:"pos"`
	Rotation [3]float32 `cbor:"rot"`
	Scale    float32    `cbor:"scale"`

	RenderDistance int32 `cbor:"render_distance"`
	State          int32 `cbor:"state"`

	PVarIndex int32  `cbor:"pvar_index"`
	PVars     []byte `cbor:"pvars"`
}

// SaveLevel writes a level working copy to path.
func SaveLevel(lvl *level.Level, path string, codec CompressionTag) error {
	if lvl == nil {
		return ErrNilLevel
	}

	rec := levelRecord{
		Name:      lvl.Name,
		ModelIDs:  lvl.ModelIDs,
		PVarTable: lvl.PVarTable,
	}
	for _, m := range lvl.Models {
		rec.Models = append(rec.Models, newModelRecord(m, lvl.Name))
	}
	for i := range lvl.Textures {
		rec.Textures = append(rec.Textures, newTextureRecord(&lvl.Textures[i]))
	}
	for i := range lvl.Mobys {
		moby := &lvl.Mobys[i]
		rec.Mobys = append(rec.Mobys, mobyRecord{
			ID:             moby.ID,
			ModelID:        moby.ModelID,
			Position:       moby.Position,
			Rotation:       moby.Rotation,
			Scale:          moby.Scale,
			RenderDistance: moby.RenderDistance,
			State:          moby.State,
			PVarIndex:      moby.PVarIndex,
			PVars:          moby.PVars,
		})
	}

	payload, err := encMode.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("encoding level %s: %w", lvl.Name, err)
	}
	return writeContainer(path, levelMagic, codec, payload)
}

// LoadLevel reads a level working copy and restores the derived state
// snapshots do not carry: moby links and model skeletons. A model
// whose bone records no longer chain is loaded without a skeleton.
func LoadLevel(path string) (*level.Level, error) {
	payload, err := readContainer(path, levelMagic)
	if err != nil {
		return nil, err
	}

	var rec levelRecord
	if err := decMode.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPayload, path, err)
	}

	lvl := level.New(rec.Name)
	lvl.ModelIDs = rec.ModelIDs
	lvl.PVarTable = rec.PVarTable

	for i := range rec.Models {
		m, err := rec.Models[i].toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		_ = m.RebuildSkeleton()
		lvl.Models = append(lvl.Models, m)
	}

	for i := range rec.Textures {
		lvl.Textures = append(lvl.Textures, rec.Textures[i].toTexture())
	}

	for _, mr := range rec.Mobys {
		lvl.Mobys = append(lvl.Mobys, level.Moby{
			ID:             mr.ID,
			ModelID:        mr.ModelID,
			Position:       mr.Position,
			Rotation:       mr.Rotation,
			Scale:          mr.Scale,
			RenderDistance: mr.RenderDistance,
			State:          mr.State,
			PVarIndex:      mr.PVarIndex,
			PVars:          mr.PVars,
		})
	}

	lvl.RelinkMobys()
	return lvl, nil
}
