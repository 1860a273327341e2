package resume

import (
	"strings"
	"testing"
)

func TestBuildLayoutOrdersByOrderIndex(t *testing.T) {
	// Insertion order deliberately disagrees with OrderIndex.
	sections := []Section{
		{ID: 10, Type: SectionSkills, Title: "Skills", OrderIndex: 2},
		{ID: 11, Type: SectionSummary, Title: "Summary", OrderIndex: 0},
		{ID: 12, Type: SectionExperience, Title: "Experience", OrderIndex: 1},
	}

	layout := BuildLayout("Backend Resume", "", Style{}, sections)

	wantTitles := []string{"Summary", "Experience", "Skills"}
	if len(layout.Sections) != len(wantTitles) {
		t.Fatalf("section count = %d", len(layout.Sections))
	}
	for i, v := range layout.Sections {
		if v.Title != wantTitles[i] {
			t.Fatalf("position %d = %q, want %q", i, v.Title, wantTitles[i])
		}
	}
}

func TestBuildLayoutSplitsParagraphs(t *testing.T) {
	sections := []Section{{
		Type:    SectionSummary,
		Title:   "Summary",
		Content: "First paragraph\nstill first.\r\n\r\nSecond paragraph.\n\n\n\nThird.",
	}}

	layout := BuildLayout("r", "", Style{}, sections)
	got := layout.Sections[0].Paragraphs
	want := []string{"First paragraph\nstill first.", "Second paragraph.", "Third."}
	if len(got) != len(want) {
		t.Fatalf("paragraphs = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveTypography(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  Typography
	}{
		{
			name:  "explicit values",
			style: Style{FontFamily: "serif", FontSize: "large", LineSpacing: "compact", MarginSize: "small"},
			want:  Typography{FontStack: "Georgia, 'Times New Roman', serif", FontSizePt: 12, LineHeight: 1.2, MarginIn: 0.4},
		},
		{
			name:  "unknown values fall back to defaults",
			style: Style{FontFamily: "comic", FontSize: "huge", LineSpacing: "", MarginSize: "xl"},
			want:  Typography{FontStack: "Helvetica, Arial, sans-serif", FontSizePt: 11, LineHeight: 1.5, MarginIn: 0.6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTypography(tt.style); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderHTMLMatchesLayoutOrder(t *testing.T) {
	sections := []Section{
		{Type: SectionEducation, Title: "Education", Content: "BSc", OrderIndex: 1},
		{Type: SectionSummary, Title: "Profile", Content: "Engineer", OrderIndex: 0},
	}
	layout := BuildLayout("Jane Doe", "Backend engineer", Style{FontFamily: "mono"}, sections)

	html, err := RenderHTML(layout)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}

	profileAt := strings.Index(html, "Profile")
	educationAt := strings.Index(html, "Education")
	if profileAt < 0 || educationAt < 0 {
		t.Fatal("section titles missing from document")
	}
	if profileAt > educationAt {
		t.Fatal("sections rendered out of order_index order")
	}
	if !strings.Contains(html, "Courier") {
		t.Fatal("typography not applied")
	}
	if !strings.Contains(html, "0.60in") {
		t.Fatal("margin not applied")
	}
	if strings.Contains(html, "http://") || strings.Contains(html, "https://") {
		t.Fatal("document must be self-contained")
	}
}

func TestRenderHTMLPinsPageMargin(t *testing.T) {
	tests := []struct {
		name  string
		style Style
	}{
		{name: "small margin", style: Style{MarginSize: "small"}},
		{name: "medium margin", style: Style{MarginSize: "medium"}},
		{name: "large margin", style: Style{MarginSize: "large"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := RenderHTML(BuildLayout("r", "", tt.style, nil))
			if err != nil {
				t.Fatalf("render html: %v", err)
			}
			// The @page margin is fixed; margin_size only changes the inner
			// body padding.
			if !strings.Contains(html, "margin: 0.4in;") {
				t.Fatal("page margin not pinned to 0.4in")
			}
		})
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	sections := []Section{{
		Type:    SectionCustom,
		Title:   "<script>alert(1)</script>",
		Content: "a < b & c",
	}}
	html, err := RenderHTML(BuildLayout("r", "", Style{}, sections))
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatal("title was not escaped")
	}
	if !strings.Contains(html, "a &lt; b &amp; c") {
		t.Fatal("content was not escaped")
	}
}
