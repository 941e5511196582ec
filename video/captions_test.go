package video

import (
	"strings"
	"testing"

	"roboshorts/config"
)

func TestMaxCaptionCharsMatchesSafeWidth(t *testing.T) {
	got := maxCaptionChars(config.CaptionFontSize, safeWidth())
	if got < 20 || got > 40 {
		t.Fatalf("character budget %d is outside the expected caption range", got)
	}
}

func TestWrapCaptionNeverExceedsBudget(t *testing.T) {
	body := "A   new robot\narm was unveiled today and it can lift twice the payload " +
		"of the previous generation while drawing less power in the factory"
	budget := maxCaptionChars(config.CaptionFontSize, safeWidth())

	lines := wrapCaption(body, budget)
	if len(lines) == 0 {
		t.Fatal("expected wrapped lines")
	}
	for _, line := range lines {
		if len(line) > budget {
			t.Errorf("line %q is %d chars, budget %d", line, len(line), budget)
		}
		if strings.Contains(line, "\n") || strings.Contains(line, "  ") {
			t.Errorf("line %q not whitespace-normalized", line)
		}
	}
}

func TestWrapCaptionRejoinsAllWords(t *testing.T) {
	body := "one two three four five six seven eight nine ten"

	lines := wrapCaption(body, 15)
	if strings.Join(lines, " ") != body {
		t.Errorf("wrapping lost or reordered words: %v", lines)
	}
}

func TestWrapCaptionEmptyBody(t *testing.T) {
	if lines := wrapCaption("   \n\t ", 34); lines != nil {
		t.Errorf("expected nil for blank body, got %v", lines)
	}
}

func TestLayoutCaptionsSpreadsEvenly(t *testing.T) {
	lines := []string{"a", "b", "c"}
	captions := layoutCaptions(lines, 60)

	if len(captions) != 3 {
		t.Fatalf("got %d captions, want 3", len(captions))
	}

	// Three lines over 60s still spread across MinCaptionSlots slots.
	wantSlot := 60.0 / float64(config.MinCaptionSlots)
	for i, c := range captions {
		if got := c.End - c.Start; got != wantSlot {
			t.Errorf("caption %d slot %.2f, want %.2f", i, got, wantSlot)
		}
	}

	// 90% stride: each caption starts before the previous one ends.
	for i := 1; i < len(captions); i++ {
		if captions[i].Start >= captions[i-1].End {
			t.Errorf("caption %d leaves dead air: starts %.2f after %.2f", i, captions[i].Start, captions[i-1].End)
		}
	}
}

func TestLayoutCaptionsMinimumSlot(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "line"
	}

	captions := layoutCaptions(lines, 10)
	for i, c := range captions {
		if c.End-c.Start < config.MinCaptionSeconds {
			t.Errorf("caption %d shorter than minimum: %.2f", i, c.End-c.Start)
		}
	}
}
