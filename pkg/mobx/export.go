package mobx

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ratchetmods/mobyswap/pkg/level"
)

// Exporter writes self-contained model containers. One exporter can
// serve many Export calls; it holds no per-file state.
type Exporter struct {
	log   *zap.Logger
	codec CompressionTag
}

// NewExporter returns an exporter writing payloads with the given
// compression. A nil logger disables logging.
func NewExporter(log *zap.Logger, codec CompressionTag) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{log: log, codec: codec}
}

// Export writes the model and the full content of every texture its
// configs reference into a container at path. The level supplies the
// texture pool and the origin tag; neither is modified. A failed
// export leaves no file behind.
func (e *Exporter) Export(m *level.Model, lvl *level.Level, path string) error {
	if m == nil {
		return ErrNilModel
	}
	if lvl == nil {
		return ErrNilLevel
	}

	rec := newModelRecord(m, lvl.Name)
	rec.Textures = e.collectTextures(m, lvl)

	payload, err := encMode.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("encoding model %d: %w", m.ID, err)
	}

	if err := writeContainer(path, modelMagic, e.codec, payload); err != nil {
		return err
	}

	e.log.Info("exported model",
		zap.Int32("id", m.ID),
		zap.String("name", m.Name),
		zap.String("file", path),
		zap.Int("textures", len(rec.Textures)),
		zap.Int("payload_bytes", len(payload)))
	return nil
}

// ExportByID looks the model up in the level and exports it.
func (e *Exporter) ExportByID(id int32, lvl *level.Level, path string) error {
	if lvl == nil {
		return ErrNilLevel
	}
	m := lvl.ModelByID(id)
	if m == nil {
		return fmt.Errorf("%w: %d (%s)", ErrNoSuchModel, id, level.ClassName(id))
	}
	return e.Export(m, lvl, path)
}

// collectTextures embeds each referenced texture once, in first-use
// order across the primary and low-detail config lists. A config
// whose id is not in the pool is logged and skipped; the importer
// will carry such ids verbatim.
func (e *Exporter) collectTextures(m *level.Model, lvl *level.Level) []textureRecord {
	var out []textureRecord
	seen := make(map[int32]bool)

	collect := func(configs []level.TextureConfig) {
		for _, cfg := range configs {
			if seen[cfg.TextureID] {
				continue
			}
			seen[cfg.TextureID] = true

			tex := lvl.TextureByID(cfg.TextureID)
			if tex == nil {
				e.log.Warn("texture id not in pool, left unembedded",
					zap.Int32("model", m.ID),
					zap.Int32("texture", cfg.TextureID))
				continue
			}
			out = append(out, newTextureRecord(tex))
		}
	}

	collect(m.TextureConfigs)
	collect(m.LowDetailTextureConfigs)
	return out
}
