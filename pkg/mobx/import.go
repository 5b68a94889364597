package mobx

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ratchetmods/mobyswap/pkg/dedup"
	"github.com/ratchetmods/mobyswap/pkg/level"
	"github.com/ratchetmods/mobyswap/pkg/remap"
)

// Importer merges model containers into destination levels.
type Importer struct {
	log *zap.Logger
}

// NewImporter returns an importer. A nil logger disables logging.
func NewImporter(log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{log: log}
}

// ReadModel decodes a model container without touching any level. The
// returned textures carry their source pool ids, which is what the
// model's configs still refer to.
func ReadModel(path string) (*level.Model, []level.Texture, error) {
	payload, err := readContainer(path, modelMagic)
	if err != nil {
		return nil, nil, err
	}

	var rec modelRecord
	if err := decMode.Unmarshal(payload, &rec); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrCorruptPayload, path, err)
	}

	m, err := rec.toModel()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	textures := make([]level.Texture, len(rec.Textures))
	for i := range rec.Textures {
		textures[i] = rec.Textures[i].toTexture()
	}
	return m, textures, nil
}

// Import reads the container at path and appends its model to dst.
// A model id collision fails with ErrModelExists unless overwrite is
// set, in which case the old model is removed first; ids are never
// renumbered. Embedded textures merge into the destination pool by
// content and the model's configs are rewritten to the merged ids.
// On failure dst is left unchanged.
func (im *Importer) Import(path string, dst *level.Level, overwrite bool) (*level.Model, error) {
	if dst == nil {
		return nil, ErrNilLevel
	}

	m, textures, err := ReadModel(path)
	if err != nil {
		return nil, err
	}

	if existing := dst.ModelByID(m.ID); existing != nil {
		if !overwrite {
			return nil, fmt.Errorf("%w: id %d (%s)", ErrModelExists, m.ID, level.ClassName(m.ID))
		}
		dst.RemoveModel(m.ID)
		im.log.Info("replacing existing model", zap.Int32("id", m.ID))
	}

	table := im.mergeTextures(textures, dst)
	im.remapConfigs(m, table)

	if len(m.BoneMatrices) > 0 && len(m.BoneDatas) > 0 {
		if err := m.RebuildSkeleton(); err != nil {
			im.log.Warn("model imported without skeleton",
				zap.Int32("model", m.ID),
				zap.Error(err))
		}
	}

	dst.AddModel(m)

	im.log.Info("imported model",
		zap.Int32("id", m.ID),
		zap.String("name", m.Name),
		zap.String("file", path),
		zap.Int("textures", len(textures)))
	return m, nil
}

// mergeTextures folds embedded textures into the destination pool,
// reusing any destination texture with identical content. Returns the
// source to destination id table.
func (im *Importer) mergeTextures(textures []level.Texture, dst *level.Level) *remap.Table {
	pool := dedup.NewPool()

	// Seed the pool with the destination's content. slotToID remembers
	// which texture id first held each distinct content slot.
	slotToID := make([]int32, 0, len(dst.Textures))
	for i := range dst.Textures {
		before := pool.Len()
		pool.Intern(dst.Textures[i].Identity())
		if pool.Len() > before {
			slotToID = append(slotToID, dst.Textures[i].ID)
		}
	}

	table := remap.NewTable()
	for i := range textures {
		srcID := textures[i].ID
		before := pool.Len()
		slot := pool.Intern(textures[i].Identity())
		if pool.Len() > before {
			slotToID = append(slotToID, dst.AddTexture(textures[i]))
			im.log.Debug("texture appended",
				zap.Int32("src", srcID),
				zap.Int32("dst", slotToID[slot]))
		} else {
			im.log.Debug("texture matched existing content",
				zap.Int32("src", srcID),
				zap.Int32("dst", slotToID[slot]))
		}
		table.Record(srcID, slotToID[slot])
	}
	return table
}

// remapConfigs rewrites every config's texture id through the table.
// An unmapped id is kept verbatim and logged; the engine tolerates
// dangling texture ids at runtime, so import does not abort on one.
func (im *Importer) remapConfigs(m *level.Model, table *remap.Table) {
	apply := func(configs []level.TextureConfig) {
		for i := range configs {
			id, err := table.Resolve(configs[i].TextureID)
			if errors.Is(err, remap.ErrNotMapped) {
				im.log.Warn("texture id has no mapping, kept verbatim",
					zap.Int32("model", m.ID),
					zap.Int32("texture", configs[i].TextureID))
				continue
			}
			configs[i].TextureID = id
		}
	}

	apply(m.TextureConfigs)
	apply(m.LowDetailTextureConfigs)
}
