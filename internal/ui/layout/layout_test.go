package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v", tt.w, tt.h, got)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader(Header{Title: "Study", Balance: 120, Clock: "00:10:00"}, 100)
	for _, want := range []string{"StudyBuddy", "Study", "★ 120 pts", "00:10:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if w := lipgloss.Width(out); w != 100 {
		t.Errorf("header width = %d, want 100", w)
	}

	if strings.Contains(RenderHeader(Header{Title: "Rewards"}, 100), "⏱") {
		t.Error("an empty clock should be hidden")
	}
}

func TestRenderFooter_DropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	wide := RenderFooter(hints, 100)
	if !strings.Contains(wide, "Quit") {
		t.Error("all hints should fit at 100 columns")
	}

	narrow := RenderFooter(hints, 30)
	if !strings.Contains(narrow, "Select") || strings.Contains(narrow, "Quit") {
		t.Errorf("expected only leading hints at 30 columns, got %q", narrow)
	}
}

func TestCompose(t *testing.T) {
	header := RenderHeader(Header{Title: "Study"}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	out := Compose(header, "body", footer, 80, 30)
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("composed height = %d, want 30", h)
	}
	if !strings.Contains(out, "body") {
		t.Error("content missing")
	}
}
