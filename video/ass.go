package video

import (
	"fmt"
	"math"
	"os"

	"roboshorts/config"
)

// writeASS writes the caption track and CTA footer as an ASS subtitle file.
// Captions use a drop-shadow style (dark offset copy under white text) so
// they stay legible over arbitrary footage.
func writeASS(outputPath string, captions []captionLine, footer captionLine) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	videoHeight := float64(config.VideoHeight)
	captionMarginV := int(videoHeight * config.CaptionTopRatio)
	footerMarginV := int(videoHeight * (1 - config.FooterBottomRatio))

	fmt.Fprintln(file, "[Script Info]")
	fmt.Fprintln(file, "Title: roboshorts captions")
	fmt.Fprintln(file, "ScriptType: v4.00+")
	fmt.Fprintf(file, "PlayResX: %d\n", config.VideoWidth)
	fmt.Fprintf(file, "PlayResY: %d\n", config.VideoHeight)
	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[V4+ Styles]")
	fmt.Fprintln(file, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding")

	// White text, dark shadow, anchored near the top of the frame.
	fmt.Fprintf(file,
		"Style: Caption,DejaVu Sans,%d,&H00FFFFFF,&H00FFFFFF,&H00000000,&H96000000,-1,0,0,0,100,100,0,0,1,0,2,8,%d,%d,%d,1\n",
		config.CaptionFontSize, config.SafeMarginX, config.SafeMarginX, captionMarginV)

	// Smaller footer anchored near the bottom.
	fmt.Fprintf(file,
		"Style: Footer,DejaVu Sans,%d,&H00FFFFFF,&H00FFFFFF,&H00000000,&H96000000,-1,0,0,0,100,100,0,0,1,0,2,2,%d,%d,%d,1\n",
		config.FooterFontSize, config.SafeMarginX, config.SafeMarginX, footerMarginV)

	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[Events]")
	fmt.Fprintln(file, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text")

	for _, c := range captions {
		fmt.Fprintf(file, "Dialogue: 0,%s,%s,Caption,,0,0,0,,%s\n",
			formatASSTimestamp(c.Start), formatASSTimestamp(c.End), escapeASSText(c.Text))
	}
	if footer.Text != "" {
		fmt.Fprintf(file, "Dialogue: 1,%s,%s,Footer,,0,0,0,,%s\n",
			formatASSTimestamp(footer.Start), formatASSTimestamp(footer.End), escapeASSText(footer.Text))
	}

	return nil
}

// formatASSTimestamp converts seconds to ASS timestamp format (h:mm:ss.cc).
// Rounds to whole centiseconds to avoid float truncation drift.
func formatASSTimestamp(seconds float64) string {
	total := int(math.Round(seconds * 100))
	if total < 0 {
		total = 0
	}
	centisecs := total % 100
	secs := (total / 100) % 60
	minutes := (total / 6000) % 60
	hours := total / 360000

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centisecs)
}

// escapeASSText keeps caption text on a single dialogue line.
func escapeASSText(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		switch r {
		case '\n', '\r':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
