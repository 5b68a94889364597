package level

import "fmt"

// mobyClassNames maps well-known moby class ids to the names the
// modding community uses for them. The table seeds the classes swap
// jobs touch most; everything else falls back to a numeric name.
var mobyClassNames = map[int32]string{
	11:   "ratchet",
	12:   "clank",
	122:  "crate",
	123:  "ammo_crate",
	124:  "nanotech_crate",
	291:  "gold_bolt",
	500:  "bolt",
	1143: "vendor",
	1204: "teleporter_pad",
	1213: "swingshot_node",
}

// ClassName returns the community name for a moby class id, or a
// numeric fallback for classes outside the table.
func ClassName(id int32) string {
	if name, ok := mobyClassNames[id]; ok {
		return name
	}
	return fmt.Sprintf("class_%d", id)
}

// KnownClass reports whether the class id has a name in the table.
func KnownClass(id int32) bool {
	_, ok := mobyClassNames[id]
	return ok
}
