package tui

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"Note 1: Scratched from the inside.", kindNote},
		{"Card drawn: Iron Chest.", kindCard},
		{"Revealed: Iron Chest.", kindCard},
		{"[trace] tiles=3 entities=[icon-1]", kindTrace},
		{"[Session saved to quicksave.]", kindSystem},
		{"..++##....", kindMap},
		{"Unknown command: dance.", kindError},
		{"Search where? Try: search <x> <y>", kindError},
		{"Dust hangs in the torchlight.", kindNarrative},
		{"3 tile(s) revealed.", kindNarrative},
	}
	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestIsMapRow(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"......", true},
		{"+#.+#.", true},
		{"", false},
		{".. ..", false},
		{"x.....", false},
	}
	for _, tt := range tests {
		if got := isMapRow(tt.line); got != tt.want {
			t.Errorf("isMapRow(%q) = %t, want %t", tt.line, got, tt.want)
		}
	}
}

func TestHistory_PushAndNavigate(t *testing.T) {
	h := NewHistory(10)
	h.Push("search 1 1")
	h.Push("enter 2 2")

	if got, ok := h.Prev(); !ok || got != "enter 2 2" {
		t.Errorf("Prev = %q, %t", got, ok)
	}
	if got, ok := h.Prev(); !ok || got != "search 1 1" {
		t.Errorf("Prev = %q, %t", got, ok)
	}
	// At the oldest entry, Prev stays put.
	if got, ok := h.Prev(); !ok || got != "search 1 1" {
		t.Errorf("Prev at start = %q, %t", got, ok)
	}
	if got, ok := h.Next(); !ok || got != "enter 2 2" {
		t.Errorf("Next = %q, %t", got, ok)
	}
	// Past the newest entry, Next returns to fresh input.
	if _, ok := h.Next(); ok {
		t.Error("Next past end should report false")
	}
}

func TestHistory_SkipsConsecutiveDuplicates(t *testing.T) {
	h := NewHistory(10)
	h.Push("look")
	h.Push("look")
	h.Push("flags")
	h.Push("look")

	first, _ := h.Prev()
	second, _ := h.Prev()
	third, _ := h.Prev()
	if first != "look" || second != "flags" || third != "look" {
		t.Errorf("history walk = %q, %q, %q", first, second, third)
	}
}

func TestHistory_EvictsBeyondMax(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c")

	if got, _ := h.Prev(); got != "c" {
		t.Errorf("newest = %q", got)
	}
	if got, _ := h.Prev(); got != "b" {
		t.Errorf("next = %q", got)
	}
	// "a" was evicted.
	if got, _ := h.Prev(); got != "b" {
		t.Errorf("oldest = %q, want b", got)
	}
}

func TestHistory_EmptyPrev(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("Prev on empty history should report false")
	}
	if _, ok := h.Next(); ok {
		t.Error("Next without navigation should report false")
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("a")
	h.Push("b")
	h.Prev()
	h.Prev()
	h.ResetCursor()

	if got, _ := h.Prev(); got != "b" {
		t.Errorf("after reset Prev = %q, want b", got)
	}
}
