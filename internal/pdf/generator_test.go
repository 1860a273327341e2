package pdf

import "testing"

func TestPrintOptionsUsesA4WithFixedMargins(t *testing.T) {
	opts := printOptions()

	if opts.PaperWidth == nil || *opts.PaperWidth != 8.27 {
		t.Fatalf("paper width = %v, want 8.27", opts.PaperWidth)
	}
	if opts.PaperHeight == nil || *opts.PaperHeight != 11.69 {
		t.Fatalf("paper height = %v, want 11.69", opts.PaperHeight)
	}
	for name, got := range map[string]*float64{
		"top":    opts.MarginTop,
		"bottom": opts.MarginBottom,
		"left":   opts.MarginLeft,
		"right":  opts.MarginRight,
	} {
		if got == nil || *got != 0.4 {
			t.Fatalf("%s margin = %v, want 0.4", name, got)
		}
	}
	if !opts.PrintBackground {
		t.Fatal("print background disabled")
	}
}
