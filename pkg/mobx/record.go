package mobx

import (
	"fmt"

	"github.com/ratchetmods/mobyswap/pkg/level"
)

// modelRecord is the CBOR payload of a .mobx file. Every list keeps
// its source order; the record is self-contained, so the textures the
// configs refer to travel inside it.
type modelRecord struct {
	ID     int32  `cbor:"id"`
	Name   string `cbor:"name"`
	Origin string `cbor:"origin"`

	Size float32 `cbor:"size"`
	Unk0 uint32  `cbor:"unk0"`
	Unk1 uint32  `cbor:"unk1"`

	BoneCount          uint16 `cbor:"bones"`
	LowDetailBoneCount uint16 `cbor:"lp_bones"`
	VertexStride       int32  `cbor:"stride"`

	VertexBuffer []byte `cbor:"vertices"`
	IndexBuffer  []byte `cbor:"indices"`

	TextureConfigs          []configRecord `cbor:"configs"`
	LowDetailTextureConfigs []configRecord `cbor:"lp_configs"`

	BoneWeights []byte `cbor:"bone_weights"`
	BoneIDs     []byte `cbor:"bone_ids"`

	Animations []animationRecord `cbor:"animations"`

	BoneMatrices [][]byte     `cbor:"bone_matrices"`
	BoneDatas    []boneRecord `cbor:"bone_datas"`

	Attachments  []blobRecord `cbor:"attachments"`
	Sounds       []blobRecord `cbor:"sounds"`
	OtherBuffers [][]byte     `cbor:"other_buffers"`

	Textures []textureRecord `cbor:"textures"`
}

type configRecord struct {
	TextureID int32 `cbor:"tex"`
	Start     int32 `cbor:"start"`
	Size      int32 `cbor:"size"`
	Mode      int32 `cbor:"mode"`
	WrapS     int32 `cbor:"wrap_s"`
	WrapT     int32 `cbor:"wrap_t"`
}

type animationRecord struct {
	Speed float32 `cbor:"speed"`
	Unk0  float32 `cbor:"unk0"`
	Unk1  float32 `cbor:"unk1"`
	Unk2  float32 `cbor:"unk2"`
	Unk3  float32 `cbor:"unk3"`

	Frames [][]byte `cbor:"frames"`
	Sounds []int32  `cbor:"sounds"`
}

type boneRecord struct {
	Parent int32  `cbor:"parent"`
	Data   []byte `cbor:"data"`
}

type blobRecord struct {
	ID   int32  `cbor:"id"`
	Data []byte `cbor:"data"`
}

// textureRecord embeds the full content of one referenced texture.
// SourceID is the pool id the record's configs refer to; the importer
// maps it to a destination pool id.
type textureRecord struct {
	SourceID int32  `cbor:"src_id"`
	Width    int32  `cbor:"width"`
	Height   int32  `cbor:"height"`
	MipCount int32  `cbor:"mips"`
	WrapS    int32  `cbor:"wrap_s"`
	WrapT    int32  `cbor:"wrap_t"`
	Data     []byte `cbor:"data"`
}

// newModelRecord flattens a model into its wire form. Embedded
// textures are collected separately by the exporter.
func newModelRecord(m *level.Model, origin string) modelRecord {
	return modelRecord{
		ID:     m.ID,
		Name:   m.Name,
		Origin: origin,

		Size: m.Size,
		Unk0: m.Unk0,
		Unk1: m.Unk1,

		BoneCount:          m.BoneCount,
		LowDetailBoneCount: m.LowDetailBoneCount,
		VertexStride:       m.VertexStride,

		VertexBuffer: float32sToBytes(m.VertexBuffer),
		IndexBuffer:  uint16sToBytes(m.IndexBuffer),

		TextureConfigs:          configsToRecords(m.TextureConfigs),
		LowDetailTextureConfigs: configsToRecords(m.LowDetailTextureConfigs),

		BoneWeights: uint32sToBytes(m.BoneWeights),
		BoneIDs:     uint32sToBytes(m.BoneIDs),

		Animations: animationsToRecords(m.Animations),

		BoneMatrices: matricesToRecords(m.BoneMatrices),
		BoneDatas:    bonesToRecords(m.BoneDatas),

		Attachments:  attachmentsToRecords(m.Attachments),
		Sounds:       soundsToRecords(m.Sounds),
		OtherBuffers: m.OtherBuffers,
	}
}

// toModel rebuilds an in-memory model from its wire form. The derived
// skeleton is left for the importer to rebuild.
func (r *modelRecord) toModel() (*level.Model, error) {
	vertices, err := bytesToFloat32s(r.VertexBuffer)
	if err != nil {
		return nil, fmt.Errorf("%w: model %d: %v", ErrCorruptPayload, r.ID, err)
	}
	indices, err := bytesToUint16s(r.IndexBuffer)
	if err != nil {
		return nil, fmt.Errorf("%w: model %d: %v", ErrCorruptPayload, r.ID, err)
	}
	weights, err := bytesToUint32s(r.BoneWeights)
	if err != nil {
		return nil, fmt.Errorf("%w: model %d: %v", ErrCorruptPayload, r.ID, err)
	}
	boneIDs, err := bytesToUint32s(r.BoneIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: model %d: %v", ErrCorruptPayload, r.ID, err)
	}

	return &level.Model{
		ID:   r.ID,
		Name: r.Name,

		Size: r.Size,
		Unk0: r.Unk0,
		Unk1: r.Unk1,

		BoneCount:          r.BoneCount,
		LowDetailBoneCount: r.LowDetailBoneCount,
		VertexStride:       r.VertexStride,

		VertexBuffer: vertices,
		IndexBuffer:  indices,

		TextureConfigs:          recordsToConfigs(r.TextureConfigs),
		LowDetailTextureConfigs: recordsToConfigs(r.LowDetailTextureConfigs),

		BoneWeights: weights,
		BoneIDs:     boneIDs,

		Animations: recordsToAnimations(r.Animations),

		BoneMatrices: recordsToMatrices(r.BoneMatrices),
		BoneDatas:    recordsToBones(r.BoneDatas),

		Attachments:  recordsToAttachments(r.Attachments),
		Sounds:       recordsToSounds(r.Sounds),
		OtherBuffers: r.OtherBuffers,
	}, nil
}

func configsToRecords(configs []level.TextureConfig) []configRecord {
	if len(configs) == 0 {
		return nil
	}
	out := make([]configRecord, len(configs))
	for i, c := range configs {
		out[i] = configRecord{
			TextureID: c.TextureID,
			Start:     c.Start,
			Size:      c.Size,
			Mode:      c.Mode,
			WrapS:     int32(c.WrapS),
			WrapT:     int32(c.WrapT),
		}
	}
	return out
}

func recordsToConfigs(records []configRecord) []level.TextureConfig {
	if len(records) == 0 {
		return nil
	}
	out := make([]level.TextureConfig, len(records))
	for i, r := range records {
		out[i] = level.TextureConfig{
			TextureID: r.TextureID,
			Start:     r.Start,
			Size:      r.Size,
			Mode:      r.Mode,
			WrapS:     level.WrapMode(r.WrapS),
			WrapT:     level.WrapMode(r.WrapT),
		}
	}
	return out
}

func animationsToRecords(anims []level.Animation) []animationRecord {
	if len(anims) == 0 {
		return nil
	}
	out := make([]animationRecord, len(anims))
	for i, a := range anims {
		out[i] = animationRecord{
			Speed:  a.Speed,
			Unk0:   a.Unk0,
			Unk1:   a.Unk1,
			Unk2:   a.Unk2,
			Unk3:   a.Unk3,
			Frames: a.Frames,
			Sounds: a.Sounds,
		}
	}
	return out
}

func recordsToAnimations(records []animationRecord) []level.Animation {
	if len(records) == 0 {
		return nil
	}
	out := make([]level.Animation, len(records))
	for i, r := range records {
		out[i] = level.Animation{
			Speed:  r.Speed,
			Unk0:   r.Unk0,
			Unk1:   r.Unk1,
			Unk2:   r.Unk2,
			Unk3:   r.Unk3,
			Frames: r.Frames,
			Sounds: r.Sounds,
		}
	}
	return out
}

func matricesToRecords(matrices []level.BoneMatrix) [][]byte {
	if len(matrices) == 0 {
		return nil
	}
	out := make([][]byte, len(matrices))
	for i, m := range matrices {
		out[i] = m.Data
	}
	return out
}

func recordsToMatrices(records [][]byte) []level.BoneMatrix {
	if len(records) == 0 {
		return nil
	}
	out := make([]level.BoneMatrix, len(records))
	for i, data := range records {
		out[i] = level.BoneMatrix{Data: data}
	}
	return out
}

func bonesToRecords(bones []level.BoneData) []boneRecord {
	if len(bones) == 0 {
		return nil
	}
	out := make([]boneRecord, len(bones))
	for i, b := range bones {
		out[i] = boneRecord{Parent: b.Parent, Data: b.Data}
	}
	return out
}

func recordsToBones(records []boneRecord) []level.BoneData {
	if len(records) == 0 {
		return nil
	}
	out := make([]level.BoneData, len(records))
	for i, r := range records {
		out[i] = level.BoneData{Parent: r.Parent, Data: r.Data}
	}
	return out
}

func attachmentsToRecords(attachments []level.Attachment) []blobRecord {
	if len(attachments) == 0 {
		return nil
	}
	out := make([]blobRecord, len(attachments))
	for i, a := range attachments {
		out[i] = blobRecord{ID: a.ID, Data: a.Data}
	}
	return out
}

func recordsToAttachments(records []blobRecord) []level.Attachment {
	if len(records) == 0 {
		return nil
	}
	out := make([]level.Attachment, len(records))
	for i, r := range records {
		out[i] = level.Attachment{ID: r.ID, Data: r.Data}
	}
	return out
}

func soundsToRecords(sounds []level.SoundDef) []blobRecord {
	if len(sounds) == 0 {
		return nil
	}
	out := make([]blobRecord, len(sounds))
	for i, s := range sounds {
		out[i] = blobRecord{ID: s.ID, Data: s.Data}
	}
	return out
}

func recordsToSounds(records []blobRecord) []level.SoundDef {
	if len(records) == 0 {
		return nil
	}
	out := make([]level.SoundDef, len(records))
	for i, r := range records {
		out[i] = level.SoundDef{ID: r.ID, Data: r.Data}
	}
	return out
}

func newTextureRecord(t *level.Texture) textureRecord {
	return textureRecord{
		SourceID: t.ID,
		Width:    t.Width,
		Height:   t.Height,
		MipCount: t.MipCount,
		WrapS:    int32(t.WrapS),
		WrapT:    int32(t.WrapT),
		Data:     t.Data,
	}
}

// toTexture rebuilds a pool texture; ID carries the source pool id
// until the importer assigns a destination id.
func (r *textureRecord) toTexture() level.Texture {
	return level.Texture{
		ID:       r.SourceID,
		Width:    r.Width,
		Height:   r.Height,
		MipCount: r.MipCount,
		WrapS:    level.WrapMode(r.WrapS),
		WrapT:    level.WrapMode(r.WrapT),
		Data:     r.Data,
	}
}
