package llms

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/microsoft/teams-sdk/internal/docs"
	"github.com/microsoft/teams-sdk/internal/frontmatter"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/observability"
)

func header(siteTitle, langName, suffix, preamble string) string {
	return "# " + siteTitle + " - " + langName + " Documentation" + suffix + "\n\n" + preamble + "\n\n"
}

// renderFull writes the complete export body: every section with documents,
// each document as a sub-heading followed by its content and a rule.
func renderFull(b *strings.Builder, sections []*section) {
	for _, s := range sections {
		if len(s.docs) == 0 {
			continue
		}
		b.WriteString("## " + s.title + "\n\n")
		for _, d := range s.docs {
			if d.content == "" {
				continue
			}
			b.WriteString("### " + d.Title + "\n\n" + d.content + "\n\n---\n\n")
		}
	}
}

// smallRenderer writes the navigation index of a documentation tree.
type smallRenderer struct {
	ctx        context.Context
	b          *strings.Builder
	links      *LinkResolver
	minSummary int
	maxSummary int
}

// render writes files at the language root as top-level bullets, then every
// folder: top-level folders as headings, nested folders as indented bullets
// and files one level deeper than their folder.
func (r *smallRenderer) render(root *docs.Node) {
	files := root.ContentFiles()
	r.files(files, 0)
	if len(files) > 0 {
		r.b.WriteString("\n")
	}
	r.folders(root.Children, 0)
}

func (r *smallRenderer) folders(folders []*docs.Node, level int) {
	indent := strings.Repeat("  ", level)
	for _, f := range folders {
		if len(f.Files) == 0 && len(f.Children) == 0 {
			continue
		}
		title := f.Title
		if title == "" || title == f.Name {
			title = formatFolderName(f.Name)
		}

		switch {
		case f.Index != nil && level == 0:
			r.b.WriteString("### [" + title + "](" + r.link(f.Index, Slug(f.Name)) + ")\n\n")
			if f.Summary != "" {
				r.b.WriteString(f.Summary + "\n\n")
			}
		case f.Index != nil:
			r.b.WriteString(indent + "- [" + title + "](" + r.link(f.Index, Slug(f.Name)) + ")")
			if f.Summary != "" {
				r.b.WriteString(": " + f.Summary)
			}
			r.b.WriteString("\n")
		case level == 0:
			r.b.WriteString("### " + title + "\n\n")
		default:
			r.b.WriteString(indent + "- " + title + "\n")
		}

		r.files(f.ContentFiles(), level+1)
		r.folders(f.Children, level+1)
		if level == 0 {
			r.b.WriteString("\n")
		}
	}
}

func (r *smallRenderer) files(files []*docs.Node, level int) {
	indent := strings.Repeat("  ", level)
	for _, f := range files {
		r.b.WriteString(indent + "- [" + f.Title + "](" + r.link(f, Slug(f.Title)) + ")")
		if summary := r.summary(f); summary != "" {
			r.b.WriteString(": " + summary)
		}
		r.b.WriteString("\n")
	}
}

func (r *smallRenderer) link(n *docs.Node, fallback string) string {
	if slug, ok := r.links.SlugOf(n.Path); ok {
		return r.links.Link(slug)
	}
	return r.links.Link(fallback)
}

// summary prefers the frontmatter summary and falls back to the first clean
// paragraph of the file.
func (r *smallRenderer) summary(f *docs.Node) string {
	if f.Summary != "" {
		return f.Summary
	}
	res, err := frontmatter.ExtractFile(f.Path)
	if err != nil {
		observability.WarnContext(r.ctx, "Could not read file for summary", logfields.Path(f.Path), logfields.Error(err))
		return ""
	}
	return ExtractSummary(res.Content, r.minSummary, r.maxSummary)
}

// formatFolderName turns a directory name into a heading: separators become
// spaces and every word starts upper case.
func formatFolderName(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English, cases.NoLower).String(words)
}
