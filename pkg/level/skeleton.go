package level

import (
	"errors"
	"fmt"
)

// ErrMalformedSkeleton is returned when a bone's parent index does not
// point at an already-inserted bone.
var ErrMalformedSkeleton = errors.New("malformed skeleton")

// Bone is one node of a reconstructed skeleton tree. The tree is
// derived state: it is rebuilt from the raw bone records and never
// stored.
type Bone struct {
	Index    int32
	Parent   *Bone
	Children []*Bone
}

// BuildSkeleton reconstructs the skeleton tree from the parallel bone
// record sequences. Bone 0 is the root and its stored parent value is
// ignored; every later bone must point at a strictly lower index. The
// bone count is the smaller of the two sequence lengths, so a
// truncated sequence yields a partial skeleton rather than a failure.
// Returns nil when either sequence is empty.
func BuildSkeleton(matrices []BoneMatrix, datas []BoneData) (*Bone, error) {
	count := len(matrices)
	if len(datas) < count {
		count = len(datas)
	}
	if count == 0 {
		return nil, nil
	}

	bones := make([]*Bone, count)
	bones[0] = &Bone{Index: 0}

	for i := 1; i < count; i++ {
		parent := datas[i].Parent
		if parent < 0 || parent >= int32(i) {
			return nil, fmt.Errorf("%w: bone %d has parent %d", ErrMalformedSkeleton, i, parent)
		}
		bone := &Bone{Index: int32(i), Parent: bones[parent]}
		bones[parent].Children = append(bones[parent].Children, bone)
		bones[i] = bone
	}

	return bones[0], nil
}

// Count returns the number of bones in the subtree rooted at b.
func (b *Bone) Count() int {
	if b == nil {
		return 0
	}
	total := 1
	for _, child := range b.Children {
		total += child.Count()
	}
	return total
}

// Find returns the bone with the given index in b's subtree, or nil.
func (b *Bone) Find(index int32) *Bone {
	if b == nil {
		return nil
	}
	if b.Index == index {
		return b
	}
	for _, child := range b.Children {
		if found := child.Find(index); found != nil {
			return found
		}
	}
	return nil
}
