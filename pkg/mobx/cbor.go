package mobx

import "github.com/fxamacker/cbor/v2"

// Records use Core Deterministic Encoding so the same model always
// serializes to the same bytes. Decoding ignores unknown fields,
// which keeps old builds able to read newer records.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("mobx: cbor encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("mobx: cbor decoder initialization failed: " + err.Error())
	}
}
