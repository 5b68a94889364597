package level

// Moby is one placed instance of a model in a level. It references
// its class by id and owns one opaque pvar block of per-instance
// engine state.
type Moby struct {
	ID      int32
	ModelID int32

	Position [3]float32
	Rotation [3]float32
	Scale    float32

	RenderDistance int32
	State          int32

	// PVarIndex is this moby's slot in the level's pvar table, or -1
	// when the block is empty. Assigned by ConsolidatePVars.
	PVarIndex int32
	PVars     []byte

	// Model is the runtime link to the class, resolved against the
	// level's model list. Never serialized.
	Model *Model
}
