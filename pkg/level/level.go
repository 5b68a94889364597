// Package level holds the in-memory form of one level's interchange
// state: the model list, the shared texture pool and every moby
// placement. The proprietary engine codec that produces these
// collections is a separate concern; this package only defines the
// structures and the derived-state bookkeeping around them.
package level

// Level is one opened collection. The three main lists keep their
// container order; ModelIDs and PVarTable are derived and regenerated
// whenever their inputs change.
type Level struct {
	// Name identifies the originating container, e.g. the level file
	// stem. Carried into exports as the origin tag.
	Name string

	Models   []*Model
	Textures []Texture
	Mobys    []Moby

	// ModelIDs mirrors Models as a flat id list, the way the engine
	// header carries it. Regenerated by RebuildModelIDs.
	ModelIDs []int32

	// PVarTable holds the deduplicated pvar blocks indexed by
	// Moby.PVarIndex. Regenerated by ConsolidatePVars.
	PVarTable [][]byte
}

// New returns an empty level with the given origin name.
func New(name string) *Level {
	return &Level{Name: name}
}

// ModelByID returns the model with the given id, or nil if absent.
func (l *Level) ModelByID(id int32) *Model {
	for _, m := range l.Models {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// TextureByID returns the texture with the given pool id, or nil.
func (l *Level) TextureByID(id int32) *Texture {
	for i := range l.Textures {
		if l.Textures[i].ID == id {
			return &l.Textures[i]
		}
	}
	return nil
}

// AddTexture appends a texture to the pool and returns its assigned
// id, one past the highest id in use.
func (l *Level) AddTexture(t Texture) int32 {
	t.ID = 0
	for i := range l.Textures {
		if l.Textures[i].ID >= t.ID {
			t.ID = l.Textures[i].ID + 1
		}
	}
	l.Textures = append(l.Textures, t)
	return t.ID
}

// AddModel appends a model, regenerates the flat id list and links
// every moby referring to this id to the new model.
func (l *Level) AddModel(m *Model) {
	l.Models = append(l.Models, m)
	l.RebuildModelIDs()
	for i := range l.Mobys {
		if l.Mobys[i].ModelID == m.ID {
			l.Mobys[i].Model = m
		}
	}
}

// RemoveModel removes the model with the given id and returns it, or
// nil if absent. Mobys of that class lose their runtime link but keep
// their ModelID, matching how the engine tolerates dangling classes.
func (l *Level) RemoveModel(id int32) *Model {
	for i, m := range l.Models {
		if m.ID != id {
			continue
		}
		l.Models = append(l.Models[:i], l.Models[i+1:]...)
		l.RebuildModelIDs()
		for j := range l.Mobys {
			if l.Mobys[j].ModelID == id {
				l.Mobys[j].Model = nil
			}
		}
		return m
	}
	return nil
}

// RebuildModelIDs regenerates the flat id list from the model list.
func (l *Level) RebuildModelIDs() {
	ids := make([]int32, len(l.Models))
	for i, m := range l.Models {
		ids[i] = m.ID
	}
	l.ModelIDs = ids
}

// RelinkMobys resolves every moby's runtime model link against the
// current model list. Mobys whose class is absent keep a nil link.
func (l *Level) RelinkMobys() {
	for i := range l.Mobys {
		l.Mobys[i].Model = l.ModelByID(l.Mobys[i].ModelID)
	}
}

// MobysOfClass returns the mobys referencing the given model id.
func (l *Level) MobysOfClass(id int32) []*Moby {
	var out []*Moby
	for i := range l.Mobys {
		if l.Mobys[i].ModelID == id {
			out = append(out, &l.Mobys[i])
		}
	}
	return out
}
