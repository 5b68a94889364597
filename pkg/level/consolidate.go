package level

import "github.com/ratchetmods/mobyswap/pkg/dedup"

// ConsolidatePVars rebuilds the level's pvar table from its mobys.
// Mobys are visited in list order; byte-identical blocks collapse to
// one table entry and every moby's PVarIndex is rewritten to the
// interned slot. Empty blocks (nil or zero-length) get the -1
// sentinel and never enter the table. The resulting indices are
// contiguous from 0 in first-use order.
func (l *Level) ConsolidatePVars() {
	pool := dedup.NewPool()
	for i := range l.Mobys {
		moby := &l.Mobys[i]
		if len(moby.PVars) == 0 {
			moby.PVarIndex = -1
			continue
		}
		moby.PVarIndex = int32(pool.Intern(moby.PVars))
	}
	l.PVarTable = pool.Blocks()
}
