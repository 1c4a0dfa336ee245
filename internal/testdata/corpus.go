package testdata

import (
	"path/filepath"
	"runtime"
)

// CorpusPath returns the path for the given corpus file.
func CorpusPath(file string) string {
	_, pkgdir, _, ok := runtime.Caller(0)
	if !ok {
		panic("no debug info")
	}

	return filepath.Join(filepath.Dir(pkgdir), "corpus", file)
}
