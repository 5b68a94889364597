package mobx

import (
	"testing"

	"github.com/ratchetmods/mobyswap/pkg/level"
)

// TestModelSwapScenario walks the whole flow once: build a rigged,
// textured model in one level, export it, and land it in a fresh
// level with pool ids of its own.
func TestModelSwapScenario(t *testing.T) {
	src := level.New("kerwan")
	src.Textures = []level.Texture{
		{ID: 0, Width: 64, Height: 64, MipCount: 1, Data: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{ID: 1, Width: 64, Height: 64, MipCount: 1, Data: []byte{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}},
	}

	m := &level.Model{
		ID:           42,
		Name:         "swingshot_target",
		Size:         1,
		VertexStride: 6,
		VertexBuffer: []float32{0, 0, 0, 1, 1, 1},
		IndexBuffer:  []uint16{0, 1, 2},
		TextureConfigs: []level.TextureConfig{
			{TextureID: 0, Start: 0, Size: 3},
			{TextureID: 1, Start: 3, Size: 3},
		},
		Animations: []level.Animation{
			{
				Speed:  1,
				Frames: [][]byte{{1}, {2}, {3}},
			},
		},
		BoneMatrices: []level.BoneMatrix{{Data: []byte{1}}, {Data: []byte{2}}, {Data: []byte{3}}},
		BoneDatas: []level.BoneData{
			{Parent: -1},
			{Parent: 0},
			{Parent: 0},
		},
	}
	src.AddModel(m)

	path := exportModel(t, m, src)

	dst := level.New("pokitaru")
	got, err := NewImporter(nil).Import(path, dst, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if len(dst.Models) != 1 || dst.Models[0].ID != 42 {
		t.Fatalf("expected exactly one model with id 42, got %d models", len(dst.Models))
	}
	if len(dst.ModelIDs) != 1 || dst.ModelIDs[0] != 42 {
		t.Errorf("model id list %v, want [42]", dst.ModelIDs)
	}

	if len(dst.Textures) != 2 {
		t.Fatalf("expected both textures to land, got %d", len(dst.Textures))
	}

	if got.Skeleton == nil {
		t.Fatal("expected a skeleton")
	}
	if len(got.Skeleton.Children) != 2 {
		t.Errorf("root has %d children, want 2", len(got.Skeleton.Children))
	}
	for _, child := range got.Skeleton.Children {
		if child.Parent != got.Skeleton {
			t.Error("child bone is not attached to the root")
		}
	}

	if len(got.Animations) != 1 || len(got.Animations[0].Frames) != 3 {
		t.Error("animation frames did not survive")
	}
}
