package level

// Model is one moby class: geometry buffers, texture bindings,
// skeletal animation and the engine bookkeeping words that ride along
// untouched. Ids are unique within a level and never renumbered.
type Model struct {
	ID   int32
	Name string

	Size float32 // uniform engine scale
	Unk0 uint32  // engine words carried through verbatim
	Unk1 uint32

	BoneCount          uint16
	LowDetailBoneCount uint16

	// VertexStride is the float count per vertex. Always set when the
	// buffer is, by whoever builds the model.
	VertexStride int32

	VertexBuffer []float32
	IndexBuffer  []uint16

	// TextureConfigs bind index-buffer runs to texture pool ids.
	// The low-detail list serves the distant-draw mesh.
	TextureConfigs          []TextureConfig
	LowDetailTextureConfigs []TextureConfig

	BoneWeights []uint32
	BoneIDs     []uint32

	Animations []Animation

	// BoneMatrices and BoneDatas are parallel sequences; BoneDatas
	// carries the parent index the skeleton tree is rebuilt from.
	BoneMatrices []BoneMatrix
	BoneDatas    []BoneData

	Attachments []Attachment
	Sounds      []SoundDef

	// OtherBuffers holds the remaining per-class engine blocks whose
	// layout is owned by the game.
	OtherBuffers [][]byte

	// Skeleton is derived from the bone records after load or import.
	// Never serialized.
	Skeleton *Bone
}

// TextureConfig binds a run of the index buffer to a texture id.
// TextureID must resolve inside the owning level's texture pool.
type TextureConfig struct {
	TextureID int32
	Start     int32
	Size      int32
	Mode      int32
	WrapS     WrapMode
	WrapT     WrapMode
}

// Animation is one animation track: playback parameters plus raw
// keyframe blocks. Frame order is playback order and round-trips
// exactly.
type Animation struct {
	Speed float32
	Unk0  float32
	Unk1  float32
	Unk2  float32
	Unk3  float32

	Frames [][]byte
	Sounds []int32 // sound-trigger indices
}

// BoneMatrix is one bind-pose matrix record, kept as raw engine bytes.
type BoneMatrix struct {
	Data []byte
}

// BoneData is one bone record: the parent index extracted by the
// container loader plus the remaining raw engine bytes.
type BoneData struct {
	Parent int32
	Data   []byte
}

// Attachment is an auxiliary sub-model hook point.
type Attachment struct {
	ID   int32
	Data []byte
}

// SoundDef is a per-class sound binding.
type SoundDef struct {
	ID   int32
	Data []byte
}

// RebuildSkeleton recomputes the model's derived skeleton tree from
// its bone records. On a malformed parent chain the skeleton is
// cleared and the error returned.
func (m *Model) RebuildSkeleton() error {
	root, err := BuildSkeleton(m.BoneMatrices, m.BoneDatas)
	if err != nil {
		m.Skeleton = nil
		return err
	}
	m.Skeleton = root
	return nil
}
