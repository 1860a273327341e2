package resume

import (
	"sort"
	"strings"
)

// SectionView is one rendered block: the section's content split into
// paragraphs, in display order.
type SectionView struct {
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	OrderIndex int      `json:"order_index"`
}

// Layout is the full rendering description of a resume. It is consumed
// unchanged by both the preview endpoint and the export HTML template.
type Layout struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Typography  Typography    `json:"typography"`
	Sections    []SectionView `json:"sections"`
}

// BuildLayout maps a style and a set of sections to a Layout. Sections are
// ordered by OrderIndex ascending regardless of input order.
func BuildLayout(name, description string, style Style, sections []Section) Layout {
	ordered := make([]Section, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	views := make([]SectionView, 0, len(ordered))
	for _, s := range ordered {
		views = append(views, SectionView{
			Type:       s.Type,
			Title:      s.Title,
			Paragraphs: splitParagraphs(s.Content),
			OrderIndex: s.OrderIndex,
		})
	}

	return Layout{
		Name:        name,
		Description: description,
		Typography:  ResolveTypography(style),
		Sections:    views,
	}
}

// splitParagraphs breaks free-text content on blank lines; single newlines
// stay inside a paragraph.
func splitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	parts := strings.Split(content, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
