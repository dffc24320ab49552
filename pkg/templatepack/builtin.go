package templatepack

import (
	"embed"
	"io/fs"
)

//go:embed builtin
var builtinFS embed.FS

// BuiltinRootName names the embedded root in logs and errors.
const BuiltinRootName = "builtin"

// BuiltinRoot returns the root of the template packs embedded in the binary.
func BuiltinRoot() Root {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return Root{Name: BuiltinRootName, FS: sub}
}

// NewDefaultLoader creates a loader over dirs followed by the built-in packs.
func NewDefaultLoader(cache *MemoCache, dirs ...string) *Loader {
	roots := make([]Root, 0, len(dirs)+1)
	for _, d := range dirs {
		if d != "" {
			roots = append(roots, DirRoot(d))
		}
	}
	roots = append(roots, BuiltinRoot())
	return NewLoader(cache, roots...)
}
