package theme

import "testing"

func TestLineHeight(t *testing.T) {
	if got := Type.LineHeight(16); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := Type.LineHeight(0); got != 1 {
		t.Fatalf("expected a minimum of 1, got %d", got)
	}
}

func TestSetTextRendererKeepsUnsetFields(t *testing.T) {
	prev := SetTextRenderer(TextRenderer{
		Measure: func(s string, size int32) int32 { return int32(len(s)) * size },
	})
	t.Cleanup(func() { SetTextRenderer(prev) })

	if got := measureText("abc", 10); got != 30 {
		t.Fatalf("expected the installed measure, got %d", got)
	}
	if renderer.Draw == nil {
		t.Fatalf("expected the default draw to survive")
	}
}
