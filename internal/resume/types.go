package resume

// Section type tags form a closed set.
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionCustom         = "custom"
)

// ValidSectionType reports whether t is one of the known section tags.
func ValidSectionType(t string) bool {
	switch t {
	case SectionSummary, SectionExperience, SectionEducation,
		SectionSkills, SectionProjects, SectionCertifications, SectionCustom:
		return true
	}
	return false
}

// Section is the in-memory view of one resume section, decoupled from the
// persistence model so reordering and rendering stay pure.
type Section struct {
	ID         uint
	Type       string
	Title      string
	Content    string
	OrderIndex int
}

// Style holds the four typography enums stored on a resume row.
type Style struct {
	FontFamily  string
	FontSize    string
	LineSpacing string
	MarginSize  string
}

// Typography is the concrete CSS-level resolution of a Style.
type Typography struct {
	FontStack  string
	FontSizePt int
	LineHeight float64
	MarginIn   float64
}

// Closed enum values for the style fields. Unknown values resolve to the
// defaults so stored rows from older clients still render.
var (
	fontStacks = map[string]string{
		"sans":  `Helvetica, Arial, sans-serif`,
		"serif": `Georgia, 'Times New Roman', serif`,
		"mono":  `'Courier New', Courier, monospace`,
	}
	fontSizes = map[string]int{
		"small":  10,
		"medium": 11,
		"large":  12,
	}
	lineHeights = map[string]float64{
		"compact": 1.2,
		"normal":  1.5,
		"relaxed": 1.8,
	}
	marginInches = map[string]float64{
		"small":  0.4,
		"medium": 0.6,
		"large":  0.8,
	}
)

const (
	defaultFontFamily  = "sans"
	defaultFontSize    = "medium"
	defaultLineSpacing = "normal"
	defaultMarginSize  = "medium"
)

// ResolveTypography maps the style enums to concrete values. The same
// resolution feeds the on-screen preview and the export template, which is
// what keeps the two visually identical.
func ResolveTypography(s Style) Typography {
	stack, ok := fontStacks[s.FontFamily]
	if !ok {
		stack = fontStacks[defaultFontFamily]
	}
	size, ok := fontSizes[s.FontSize]
	if !ok {
		size = fontSizes[defaultFontSize]
	}
	height, ok := lineHeights[s.LineSpacing]
	if !ok {
		height = lineHeights[defaultLineSpacing]
	}
	margin, ok := marginInches[s.MarginSize]
	if !ok {
		margin = marginInches[defaultMarginSize]
	}
	return Typography{
		FontStack:  stack,
		FontSizePt: size,
		LineHeight: height,
		MarginIn:   margin,
	}
}
