// Package dedup provides content-addressed interning of byte blocks.
package dedup

import "github.com/zeebo/blake3"

// smallBlockLimit is the largest block size keyed by its raw bytes.
// Larger blocks are keyed by a BLAKE3 digest instead, so lookup cost
// stays flat for big texel or pvar payloads.
const smallBlockLimit = 64

// Pool assigns each distinct byte content a stable dense index in
// first-seen order. One Pool covers one consolidation pass; pools are
// never shared between passes.
type Pool struct {
	blocks  [][]byte
	indices map[string]int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{
		indices: make(map[string]int),
	}
}

// Intern returns the index of the first block with identical content,
// adding the block to the pool when its content is new. A hit leaves
// the pool untouched. Empty input is valid content and interns like
// any other block.
func (p *Pool) Intern(data []byte) int {
	key := contentKey(data)
	if idx, ok := p.indices[key]; ok {
		return idx
	}
	idx := len(p.blocks)
	p.blocks = append(p.blocks, data)
	p.indices[key] = idx
	return idx
}

// Len returns the number of distinct blocks interned so far.
func (p *Pool) Len() int {
	return len(p.blocks)
}

// Block returns the interned block at the given index.
func (p *Pool) Block(i int) []byte {
	return p.blocks[i]
}

// Blocks returns all interned blocks in index order.
func (p *Pool) Blocks() [][]byte {
	return p.blocks
}

// contentKey derives the map key for a block. Small blocks use their
// raw bytes, large blocks a BLAKE3 digest. The one-byte prefix keeps a
// raw 32-byte block from ever colliding with another block's digest.
func contentKey(data []byte) string {
	if len(data) <= smallBlockLimit {
		return "s" + string(data)
	}
	sum := blake3.Sum256(data)
	return "h" + string(sum[:])
}
