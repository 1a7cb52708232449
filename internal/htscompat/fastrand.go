// Package htscompat defines the sync.fastrand symbol that
// github.com/grailbio/hts pulls in via go:linkname. Go 1.19+ removed
// that symbol from the runtime, so linking fails without this shim.
// Blank-import this package from any package that imports
// github.com/grailbio/hts/sam.
package htscompat

import (
	"math/rand"
	_ "unsafe" // for go:linkname
)

//go:linkname fastrand sync.fastrand
func fastrand() uint32 { return rand.Uint32() }
