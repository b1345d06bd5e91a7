package docs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	derrors "github.com/microsoft/teams-sdk/internal/docs/errors"
	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/frontmatter"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/markdown"
)

// Kind distinguishes folders from files in a documentation tree.
type Kind int

const (
	KindFolder Kind = iota
	KindFile
)

// Node is a folder or file of a documentation tree. Nodes are built bottom-up
// by BuildTree and not modified afterwards.
type Node struct {
	Kind    Kind
	Name    string // directory or file name
	Title   string
	Order   int
	Path    string
	Summary string // frontmatter summary (of the index file, for folders)

	// File nodes only.
	IsIndex bool
	Fields  frontmatter.Fields

	// Folder nodes only. Index is the folder's index file when it is visible.
	Index    *Node
	Files    []*Node
	Children []*Node
}

// Child returns the direct sub-folder called name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ContentFiles returns the folder's files without its index file.
func (n *Node) ContentFiles() []*Node {
	out := make([]*Node, 0, len(n.Files))
	for _, f := range n.Files {
		if !f.IsIndex {
			out = append(out, f)
		}
	}
	return out
}

// Walk visits n and its descendants depth-first: files of a folder before its
// sub-folders. depth is 0 for n.
func (n *Node) Walk(fn func(node *Node, depth int) error) error {
	return n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) error, depth int) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, f := range n.Files {
		if err := fn(f, depth+1); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := c.walk(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// TitleRegistry records derived file titles within one language tree.
// It is owned by the caller and must not be shared between trees.
type TitleRegistry struct {
	seen map[string]string
}

// NewTitleRegistry returns an empty registry.
func NewTitleRegistry() *TitleRegistry {
	return &TitleRegistry{seen: make(map[string]string)}
}

// Register records title for path and fails when another path already uses it.
func (r *TitleRegistry) Register(title, path string) error {
	if first, ok := r.seen[title]; ok {
		return foundationerrors.StructureError(fmt.Sprintf(
			"duplicate title %q: first occurrence %s, duplicate found in %s", title, first, path)).
			WithCause(derrors.ErrDuplicateTitle).
			WithContext("title", title).
			WithContext("first", first).
			WithContext("duplicate", path).
			Build()
	}
	r.seen[title] = path
	return nil
}

// BuildTree builds the ordered documentation tree rooted at root.
//
// Each directory's index file supplies the folder's order and title; an index
// marked `llms: ignore` or `llms: false` removes the whole folder. Content
// files marked ignore, ignore-file or false are left out. Every content file
// needs a first-level heading, and derived titles must be unique in titles.
// A missing root yields an empty folder.
func BuildTree(root string, titles *TitleRegistry) (*Node, error) {
	if titles == nil {
		titles = NewTitleRegistry()
	}
	name := filepath.Base(root)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		slog.Warn("Directory not found", logfields.Path(root))
		return &Node{Kind: KindFolder, Name: name, Title: name, Order: frontmatter.DefaultOrder, Path: root}, nil
	}

	node, _, err := buildFolder(root, name, true, titles)
	return node, err
}

func buildFolder(dir, name string, isRoot bool, titles *TitleRegistry) (*Node, bool, error) {
	folder := &Node{Kind: KindFolder, Name: name, Title: name, Order: frontmatter.DefaultOrder, Path: dir}

	var index *document
	if indexPath, ok := FindIndexFile(dir); ok {
		doc, err := readDocument(indexPath)
		if err != nil {
			return nil, false, err
		}
		if !isRoot && doc.fields.IgnoresSection() {
			slog.Debug("Skipping folder marked llms ignore", logfields.Path(dir))
			return nil, true, nil
		}
		folder.Order = doc.fields.Order()
		if title, ok := doc.title(); ok {
			folder.Title = title
		}
		folder.Summary, _ = doc.fields.String(frontmatter.KeySummary)
		index = doc
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() || !hasExtension(entry.Name(), DefaultExtensions) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		var doc *document
		if index != nil && index.path == path {
			doc = index
		} else {
			if doc, err = readDocument(path); err != nil {
				return nil, false, err
			}
		}
		if doc.fields.IgnoresFile() {
			slog.Debug("Skipping file marked llms ignore", logfields.Path(path))
			continue
		}

		file, err := buildFile(doc, entry.Name(), index == doc, folder, titles)
		if err != nil {
			return nil, false, err
		}
		if file.IsIndex {
			folder.Index = file
		}
		folder.Files = append(folder.Files, file)
	}

	for _, entry := range entries {
		if !entry.IsDir() || ShouldSkipDirectory(entry.Name()) {
			continue
		}
		child, skipped, err := buildFolder(filepath.Join(dir, entry.Name()), entry.Name(), false, titles)
		if err != nil {
			return nil, false, err
		}
		if !skipped {
			folder.Children = append(folder.Children, child)
		}
	}

	SortByOrder(folder.Files, nodeKey)
	SortByOrder(folder.Children, nodeKey)
	return folder, false, nil
}

func buildFile(doc *document, name string, isIndex bool, folder *Node, titles *TitleRegistry) (*Node, error) {
	file := &Node{
		Kind:    KindFile,
		Name:    name,
		Order:   doc.fields.Order(),
		Path:    doc.path,
		IsIndex: isIndex,
		Fields:  doc.fields,
	}
	file.Summary, _ = doc.fields.String(frontmatter.KeySummary)

	title, explicit := doc.title()
	switch {
	case file.IsIndex && !explicit:
		// Untitled index files stand for their folder.
		file.Title = folder.Title
		return file, nil
	case !file.IsIndex && !doc.hasHeading:
		return nil, foundationerrors.StructureError("no # heading found in file: "+doc.path).
			WithCause(derrors.ErrMissingHeading).
			WithContext("path", doc.path).
			Build()
	}

	file.Title = title
	if err := titles.Register(title, doc.path); err != nil {
		return nil, err
	}
	return file, nil
}

func nodeKey(n *Node) (int, string) { return n.Order, n.Name }

type document struct {
	path       string
	fields     frontmatter.Fields
	heading    string
	hasHeading bool
}

// title applies the precedence frontmatter title/sidebar_label, then heading.
func (d *document) title() (string, bool) {
	if t, ok := d.fields.Title(); ok {
		return t, true
	}
	if d.hasHeading {
		return d.heading, true
	}
	return "", false
}

func readDocument(path string) (*document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the docs walk
	if err != nil {
		return nil, foundationerrors.FileSystemError("read documentation file").
			WithCause(fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, path, err)).
			Fatal().
			WithContext("path", path).
			Build()
	}
	res := frontmatter.Extract(string(data))
	heading, ok := markdown.FirstH1([]byte(res.Content))
	return &document{path: path, fields: res.Fields, heading: heading, hasHeading: ok}, nil
}
