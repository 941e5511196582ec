package video

import (
	"strings"

	"roboshorts/config"
)

// glyphAdvanceRatio is the average horizontal advance of a mixed-case
// DejaVu Sans Bold glyph, as a fraction of the font size. Used to turn the
// frame's safe pixel width into a per-line character budget.
const glyphAdvanceRatio = 0.47

// maxCaptionChars derives the caption character budget from the safe width.
func maxCaptionChars(fontSize, safeWidth int) int {
	advance := float64(fontSize) * glyphAdvanceRatio
	n := int(float64(safeWidth) / advance)
	if n < 1 {
		n = 1
	}
	return n
}

// safeWidth is the horizontal span captions may occupy.
func safeWidth() int {
	return config.VideoWidth - 2*config.SafeMarginX
}

// wrapCaption normalizes whitespace in body and greedily wraps it into
// lines of at most maxChars characters on word boundaries. Words are never
// hyphenated; a single word longer than the budget gets its own line.
func wrapCaption(body string, maxChars int) []string {
	words := strings.Fields(body)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var line []string
	length := 0

	for _, word := range words {
		candidate := length + len(word)
		if len(line) > 0 {
			candidate++ // joining space
		}
		if len(line) > 0 && candidate > maxChars {
			lines = append(lines, strings.Join(line, " "))
			line = line[:0]
			length = 0
		}
		line = append(line, word)
		length += len(word)
		if len(line) > 1 {
			length++
		}
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return lines
}

// captionLine is one timed on-screen line.
type captionLine struct {
	Text  string
	Start float64
	End   float64
}

// layoutCaptions spreads lines across the usable duration. Each line gets
// an equal slot (at least MinCaptionSlots slots, at least MinCaptionSeconds
// each) and starts at 90% of the previous slot so captions overlap slightly
// instead of leaving dead air.
func layoutCaptions(lines []string, total float64) []captionLine {
	if len(lines) == 0 || total <= 0 {
		return nil
	}

	slots := len(lines)
	if slots < config.MinCaptionSlots {
		slots = config.MinCaptionSlots
	}
	perLine := total / float64(slots)
	if perLine < config.MinCaptionSeconds {
		perLine = config.MinCaptionSeconds
	}

	captions := make([]captionLine, 0, len(lines))
	t := config.CaptionLeadIn
	for _, line := range lines {
		captions = append(captions, captionLine{Text: line, Start: t, End: t + perLine})
		t += perLine * config.CaptionStride
	}
	return captions
}
