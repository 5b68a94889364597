package mobx

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ratchetmods/mobyswap/pkg/level"
)

func TestImporter_RoundTrip(t *testing.T) {
	src := makeSourceLevel()
	m := makeModel(122)
	src.AddModel(m)

	path := exportModel(t, m, src)

	dst := level.New("novalis")
	got, err := NewImporter(nil).Import(path, dst, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got != dst.Models[0] {
		t.Error("returned model is not the one appended to the level")
	}

	// Every field survives except the texture ids, which now point at
	// the destination pool: first use of 9 became 0, 5 became 1.
	want := makeModel(122)
	want.TextureConfigs[0].TextureID = 0
	want.TextureConfigs[1].TextureID = 1
	want.LowDetailTextureConfigs[0].TextureID = 1

	flat := *got
	flat.Skeleton = nil
	if !reflect.DeepEqual(&flat, want) {
		t.Errorf("round trip changed the model:\n got %+v\nwant %+v", &flat, want)
	}

	if got.Skeleton == nil {
		t.Fatal("expected the skeleton to be rebuilt on import")
	}
	if got.Skeleton.Count() != 3 || len(got.Skeleton.Children) != 2 {
		t.Errorf("skeleton has %d bones and %d root children, want 3 and 2",
			got.Skeleton.Count(), len(got.Skeleton.Children))
	}

	if len(dst.Textures) != 2 {
		t.Fatalf("expected 2 merged textures, got %d", len(dst.Textures))
	}
	if dst.Textures[0].Width != 32 || dst.Textures[1].Width != 64 {
		t.Errorf("merged dims [%d %d], want [32 64]",
			dst.Textures[0].Width, dst.Textures[1].Width)
	}
	if dst.Textures[0].ID != 0 || dst.Textures[1].ID != 1 {
		t.Errorf("merged ids [%d %d], want [0 1]", dst.Textures[0].ID, dst.Textures[1].ID)
	}

	if !reflect.DeepEqual(dst.ModelIDs, []int32{122}) {
		t.Errorf("model id list %v, want [122]", dst.ModelIDs)
	}
}

func TestImporter_ConflictWithoutOverwrite(t *testing.T) {
	src := makeSourceLevel()
	m := makeModel(122)
	src.AddModel(m)
	path := exportModel(t, m, src)

	dst := level.New("novalis")
	existing := &level.Model{ID: 122, Name: "incumbent"}
	dst.AddModel(existing)

	_, err := NewImporter(nil).Import(path, dst, false)
	if !errors.Is(err, ErrModelExists) {
		t.Fatalf("expected ErrModelExists, got %v", err)
	}

	// The refused import must not have touched the level.
	if len(dst.Models) != 1 || dst.Models[0] != existing {
		t.Error("existing model was disturbed")
	}
	if len(dst.Textures) != 0 {
		t.Errorf("expected no merged textures, got %d", len(dst.Textures))
	}
}

func TestImporter_Overwrite(t *testing.T) {
	src := makeSourceLevel()
	m := makeModel(122)
	src.AddModel(m)
	path := exportModel(t, m, src)

	dst := level.New("novalis")
	dst.AddModel(&level.Model{ID: 122, Name: "incumbent"})
	dst.Mobys = append(dst.Mobys, level.Moby{ID: 1, ModelID: 122, PVarIndex: -1})
	dst.RelinkMobys()

	got, err := NewImporter(nil).Import(path, dst, true)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if len(dst.Models) != 1 {
		t.Fatalf("expected the incumbent to be replaced, got %d models", len(dst.Models))
	}
	if dst.Models[0].Name == "incumbent" {
		t.Error("incumbent model survived an overwrite import")
	}
	if !reflect.DeepEqual(dst.ModelIDs, []int32{122}) {
		t.Errorf("model id list %v, want [122]", dst.ModelIDs)
	}
	// Placed instances of the class now resolve to the new model.
	if dst.Mobys[0].Model != got {
		t.Error("moby was not relinked to the imported model")
	}
}

func TestImporter_TextureMergeSharedContent(t *testing.T) {
	shared := texBytes(64, 0x5A)

	srcA := level.New("aridia")
	srcA.Textures = []level.Texture{
		{ID: 5, Width: 64, Height: 64, MipCount: 1, Data: shared},
		{ID: 9, Width: 16, Height: 16, MipCount: 1, Data: texBytes(16, 0xA1)},
	}
	mA := &level.Model{ID: 100, Name: "a", TextureConfigs: []level.TextureConfig{
		{TextureID: 5, Size: 3},
		{TextureID: 9, Size: 3},
	}}
	srcA.AddModel(mA)

	srcB := level.New("batalia")
	srcB.Textures = []level.Texture{
		// Same content and dims as srcA's id 5, under a different id.
		{ID: 3, Width: 64, Height: 64, MipCount: 1, Data: shared},
		{ID: 4, Width: 16, Height: 16, MipCount: 1, Data: texBytes(16, 0xB2)},
	}
	mB := &level.Model{ID: 200, Name: "b", TextureConfigs: []level.TextureConfig{
		{TextureID: 3, Size: 3},
		{TextureID: 4, Size: 3},
	}}
	srcB.AddModel(mB)

	dst := level.New("novalis")
	im := NewImporter(nil)
	gotA, err := im.Import(exportModel(t, mA, srcA), dst, false)
	if err != nil {
		t.Fatalf("importing a: %v", err)
	}
	gotB, err := im.Import(exportModel(t, mB, srcB), dst, false)
	if err != nil {
		t.Fatalf("importing b: %v", err)
	}

	// The shared texture lands once; both models point at it.
	if len(dst.Textures) != 3 {
		t.Fatalf("expected 3 pool textures, got %d", len(dst.Textures))
	}
	if gotA.TextureConfigs[0].TextureID != 0 || gotB.TextureConfigs[0].TextureID != 0 {
		t.Errorf("shared content maps to ids %d and %d, want 0 and 0",
			gotA.TextureConfigs[0].TextureID, gotB.TextureConfigs[0].TextureID)
	}
	if gotA.TextureConfigs[1].TextureID != 1 || gotB.TextureConfigs[1].TextureID != 2 {
		t.Errorf("unique content maps to ids %d and %d, want 1 and 2",
			gotA.TextureConfigs[1].TextureID, gotB.TextureConfigs[1].TextureID)
	}
}

func TestImporter_SameDimsDifferentBytesStayApart(t *testing.T) {
	src := level.New("aridia")
	src.Textures = []level.Texture{
		{ID: 0, Width: 64, Height: 64, MipCount: 1, Data: texBytes(64, 0x01)},
		{ID: 1, Width: 64, Height: 64, MipCount: 1, Data: texBytes(64, 0x02)},
	}
	m := &level.Model{ID: 100, Name: "a", TextureConfigs: []level.TextureConfig{
		{TextureID: 0, Size: 3},
		{TextureID: 1, Size: 3},
	}}
	src.AddModel(m)

	dst := level.New("novalis")
	if _, err := NewImporter(nil).Import(exportModel(t, m, src), dst, false); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(dst.Textures) != 2 {
		t.Errorf("expected 2 pool textures, got %d", len(dst.Textures))
	}
}

func TestImporter_UnmappedIDKeptVerbatim(t *testing.T) {
	src := level.New("aridia")
	m := &level.Model{ID: 100, Name: "a", TextureConfigs: []level.TextureConfig{
		{TextureID: 77, Size: 3},
	}}
	src.AddModel(m)

	dst := level.New("novalis")
	got, err := NewImporter(nil).Import(exportModel(t, m, src), dst, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got.TextureConfigs[0].TextureID != 77 {
		t.Errorf("dangling id became %d, want 77 verbatim", got.TextureConfigs[0].TextureID)
	}
	if len(dst.Textures) != 0 {
		t.Errorf("expected no pool growth, got %d textures", len(dst.Textures))
	}
}

func TestImporter_MalformedSkeletonStillImports(t *testing.T) {
	src := level.New("aridia")
	m := &level.Model{
		ID:           100,
		Name:         "a",
		BoneMatrices: []level.BoneMatrix{{Data: []byte{1}}, {Data: []byte{2}}, {Data: []byte{3}}},
		BoneDatas: []level.BoneData{
			{Parent: -1},
			{Parent: 2}, // references a bone that is not attached yet
			{Parent: 0},
		},
	}
	src.AddModel(m)

	dst := level.New("novalis")
	got, err := NewImporter(nil).Import(exportModel(t, m, src), dst, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got.Skeleton != nil {
		t.Error("expected no skeleton for malformed bone records")
	}
	if len(dst.Models) != 1 {
		t.Errorf("expected the model to land regardless, got %d models", len(dst.Models))
	}
}

func TestImporter_SkeletonNeedsBothRecordKinds(t *testing.T) {
	tests := []struct {
		name     string
		matrices []level.BoneMatrix
		datas    []level.BoneData
	}{
		{"matrices only", []level.BoneMatrix{{Data: []byte{1}}}, nil},
		{"datas only", nil, []level.BoneData{{Parent: -1}}},
		{"neither", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := level.New("aridia")
			m := &level.Model{ID: 100, Name: "a", BoneMatrices: tt.matrices, BoneDatas: tt.datas}
			src.AddModel(m)

			dst := level.New("novalis")
			got, err := NewImporter(nil).Import(exportModel(t, m, src), dst, false)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if got.Skeleton != nil {
				t.Error("expected no skeleton")
			}
		})
	}
}

func TestImporter_NilDestination(t *testing.T) {
	if _, err := NewImporter(nil).Import("whatever.mobx", nil, false); !errors.Is(err, ErrNilLevel) {
		t.Fatalf("expected ErrNilLevel, got %v", err)
	}
}

func TestImporter_BadFileLeavesLevelUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.mobx")
	if err := os.WriteFile(path, frame(modelMagic, formatVersion, 0, 3, []byte{1, 2, 3}), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	dst := level.New("novalis")
	_, err := NewImporter(nil).Import(path, dst, false)
	if !errors.Is(err, ErrCorruptPayload) {
		t.Fatalf("expected ErrCorruptPayload, got %v", err)
	}
	if len(dst.Models) != 0 || len(dst.Textures) != 0 {
		t.Error("failed import must not touch the level")
	}
}

func TestReadModel_MisalignedVertexBuffer(t *testing.T) {
	rec := modelRecord{ID: 3, Name: "bad", VertexBuffer: []byte{1, 2, 3}}
	payload, err := encMode.Marshal(&rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "misaligned.mobx")
	if err := os.WriteFile(path, frame(modelMagic, formatVersion, 0, uint32(len(payload)), payload), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, _, err := ReadModel(path); !errors.Is(err, ErrCorruptPayload) {
		t.Fatalf("expected ErrCorruptPayload, got %v", err)
	}
}
