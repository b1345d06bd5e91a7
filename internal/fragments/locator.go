package fragments

import (
	"path"
	"path/filepath"
	"strings"
)

// DefaultExtension is the suffix of fragment files after the language id.
const DefaultExtension = ".incl.md"

// Locator maps templates to fragment files and back.
//
// A template `{dir}/{base}.mdx` reads `{Root}/{dir}/{base}/{language}.incl.md`.
// Index templates (README or index) read `{Root}/{dir}/{language}.incl.md`.
type Locator struct {
	Root      string
	Extension string
}

// NewLocator returns a Locator for root using DefaultExtension.
func NewLocator(root string) Locator {
	return Locator{Root: root, Extension: DefaultExtension}
}

func (l Locator) ext() string {
	if l.Extension == "" {
		return DefaultExtension
	}
	return l.Extension
}

// IsIndexTemplate reports whether the template file name stands for its directory.
func IsIndexTemplate(name string) bool {
	base := strings.TrimSuffix(name, path.Ext(name))
	return base == "README" || base == "index"
}

// OutputBase returns the output base name (without extension) of a template.
func OutputBase(name string) string {
	if IsIndexTemplate(name) {
		return "index"
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// Dir returns the fragment directory for a template path relative to the
// templates root, slash separated.
func (l Locator) Dir(templateRel string) string {
	templateRel = filepath.ToSlash(templateRel)
	dir, name := path.Split(templateRel)
	if IsIndexTemplate(name) {
		return filepath.Join(l.Root, filepath.FromSlash(dir))
	}
	return filepath.Join(l.Root, filepath.FromSlash(dir), OutputBase(name))
}

// Path returns the fragment file of templateRel for language.
func (l Locator) Path(templateRel, language string) string {
	return filepath.Join(l.Dir(templateRel), language+l.ext())
}

// Templates maps a fragment file back to the template paths (relative to the
// templates root, slash separated, extension-less candidates expanded with
// extensions) that could read it. ok is false for files that are not fragments.
func (l Locator) Templates(fragmentPath string, extensions []string) (candidates []string, language string, ok bool) {
	rel, err := filepath.Rel(l.Root, fragmentPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, "", false
	}
	rel = filepath.ToSlash(rel)
	dir, name := path.Split(rel)
	if !strings.HasSuffix(name, l.ext()) {
		return nil, "", false
	}
	language = strings.TrimSuffix(name, l.ext())
	dir = strings.TrimSuffix(dir, "/")

	if dir != "" {
		for _, ext := range extensions {
			candidates = append(candidates, dir+ext)
		}
	}
	for _, base := range []string{"README", "index"} {
		for _, ext := range extensions {
			candidates = append(candidates, path.Join(dir, base+ext))
		}
	}
	return candidates, language, true
}
