package llms

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/microsoft/teams-sdk/internal/docs"
	"github.com/microsoft/teams-sdk/internal/markdown"
)

// ExportExtension is the extension of every export file.
const ExportExtension = ".txt"

// LinkResolver rewrites sibling document links to export file names.
type LinkResolver struct {
	slugs  map[string]string // source path -> slug
	byBase map[string]string // source name without extension -> slug
	prefix string
}

// NewLinkResolver returns a resolver over the slugs of every exported source
// file. Rewritten links are prefix + slug + ".txt".
func NewLinkResolver(slugs map[string]string, prefix string) *LinkResolver {
	paths := make([]string, 0, len(slugs))
	for p := range slugs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	byBase := make(map[string]string, len(paths))
	for _, p := range paths {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		if _, ok := byBase[base]; !ok {
			byBase[base] = slugs[p]
		}
	}
	return &LinkResolver{slugs: slugs, byBase: byBase, prefix: prefix}
}

// WithPrefix returns a resolver sharing r's mapping with another prefix.
func (r *LinkResolver) WithPrefix(prefix string) *LinkResolver {
	return &LinkResolver{slugs: r.slugs, byBase: r.byBase, prefix: prefix}
}

// Link returns the export link of slug.
func (r *LinkResolver) Link(slug string) string {
	return r.prefix + slug + ExportExtension
}

// SlugOf returns the slug mapped to a source file.
func (r *LinkResolver) SlugOf(path string) (string, bool) {
	s, ok := r.slugs[path]
	return s, ok
}

// Rewriter returns the link rewrite function for the document at current.
func (r *LinkResolver) Rewriter(current string) func(markdown.InlineLink) (string, bool) {
	dir := filepath.Dir(current)
	return func(link markdown.InlineLink) (string, bool) {
		target, ok := SiblingTarget(link.Destination)
		if !ok {
			return "", false
		}
		return r.Link(r.resolve(dir, target)), true
	}
}

// resolve looks the target up by exact sibling path, then by file name in
// any directory, and falls back to slugging it.
func (r *LinkResolver) resolve(dir, target string) string {
	for _, ext := range docs.DefaultExtensions {
		if s, ok := r.slugs[filepath.Join(dir, target+ext)]; ok {
			return s
		}
	}
	if s, ok := r.byBase[target]; ok {
		return s
	}
	return Slug(target)
}

// SiblingTarget returns the bare document name a link points at when it is a
// relative link to a file in the same directory. External links, anchors,
// absolute paths and links into other directories are not siblings.
func SiblingTarget(dest string) (string, bool) {
	switch {
	case strings.HasPrefix(dest, "http"),
		strings.HasPrefix(dest, "mailto"),
		strings.HasPrefix(dest, "#"),
		strings.HasPrefix(dest, "/") && !strings.HasPrefix(dest, "//"),
		strings.Contains(dest, "://"):
		return "", false
	}

	target, _, _ := strings.Cut(dest, "#")
	switch {
	case strings.HasSuffix(target, ".mdx"):
		target = strings.TrimSuffix(target, ".mdx")
	case strings.HasSuffix(target, ".md"):
		target = strings.TrimSuffix(target, ".md")
	}
	if strings.Contains(target, "/") {
		return "", false
	}
	return target, true
}

// siteBase is the URL prefix of the published export directory, or "" when
// no site URL is configured.
func siteBase(siteURL, baseURL, exportDir string) string {
	if siteURL == "" {
		return ""
	}
	if !strings.HasPrefix(baseURL, "/") {
		baseURL = "/" + baseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return strings.TrimRight(siteURL, "/") + baseURL + exportDir + "/"
}
