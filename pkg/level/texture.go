package level

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// WrapMode selects how texel lookups outside [0,1] behave.
type WrapMode int32

const (
	WrapRepeat WrapMode = 0
	WrapClamp  WrapMode = 1
)

// String returns a human-readable wrap mode name.
func (w WrapMode) String() string {
	switch w {
	case WrapRepeat:
		return "repeat"
	case WrapClamp:
		return "clamp"
	default:
		return fmt.Sprintf("unknown(%d)", int32(w))
	}
}

// Texture is one texel payload in a level's shared texture pool. Ids
// are pool positions, valid only within the owning level.
type Texture struct {
	ID       int32
	Width    int32
	Height   int32
	MipCount int32
	WrapS    WrapMode
	WrapT    WrapMode
	Data     []byte
}

// Identity returns the content key textures are deduplicated by:
// dimensions, mip count and a digest of the texel bytes. Textures with
// equal identities hold the same image.
func (t *Texture) Identity() []byte {
	key := make([]byte, 12, 12+32)
	binary.LittleEndian.PutUint32(key[0:], uint32(t.Width))
	binary.LittleEndian.PutUint32(key[4:], uint32(t.Height))
	binary.LittleEndian.PutUint32(key[8:], uint32(t.MipCount))
	sum := blake3.Sum256(t.Data)
	return append(key, sum[:]...)
}
