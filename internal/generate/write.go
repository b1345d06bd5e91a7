package generate

import (
	"os"
	"path/filepath"

	"github.com/inful/mdfp"
)

// writeIfChanged writes content to p unless the existing file already holds
// the same document. Unchanged files keep their modification time so the
// docs dev server does not reload them.
func writeIfChanged(p string, content []byte) (bool, error) {
	existing, err := os.ReadFile(p) // #nosec G304 -- output paths derive from the docs root
	if err == nil && sameDocument(existing, content) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return false, wrapWrite(err, p)
	}
	if err := os.WriteFile(p, content, 0o644); err != nil { // #nosec G306 -- generated docs are world-readable
		return false, wrapWrite(err, p)
	}
	return true, nil
}

// sameDocument compares fingerprints of the whole files. The frontmatter is
// hashed as written, so an edit to any key, fingerprint included, counts.
func sameDocument(a, b []byte) bool {
	return mdfp.CalculateFingerprint(string(a)) == mdfp.CalculateFingerprint(string(b))
}
