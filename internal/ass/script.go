package ass

import (
	"fmt"
	"image"
	"strings"
	"time"
)

// AlignMiddleCenter anchors text at its center point, so a \pos override
// places the block's midpoint rather than a corner.
const AlignMiddleCenter = 5

// Smart wrap modes. Both break lines as evenly as possible; they differ in
// which line takes the extra width when the split is uneven.
const (
	WrapSmartTopWider    = 0
	WrapSmartBottomWider = 3
)

// EventHorizon is the conventional end timestamp for dialogue that must
// outlast the program. The encoder stops at the shortest input stream, so
// an event spanning 0:00:00.00 to 9:59:59.99 covers the whole output.
const EventHorizon = 9*time.Hour + 59*time.Minute + 59*time.Second + 990*time.Millisecond

// Style carries the caption knobs the tool exposes. Everything else in the
// emitted style line is fixed: BorderStyle 4 draws an opaque box behind each
// wrapped line, alignment is middle-center, and shadow stays off.
type Style struct {
	Name         string
	FontName     string
	FontSize     int
	Primary      Color
	Outline      Color
	Back         Color
	OutlineWidth float64
}

// Event is one Dialogue line. Text is emitted verbatim, so callers build it
// from Overrides plus EscapeText; Render never escapes.
type Event struct {
	Start time.Duration
	End   time.Duration
	Style string
	Text  string
}

// Script models a complete subtitle descriptor. PlayResX and PlayResY must
// match the encode resolution exactly, otherwise every pixel coordinate in
// positions and clips lands on the wrong spot. The zero WrapStyle selects
// smart wrapping, which is what captions want.
type Script struct {
	PlayResX  int
	PlayResY  int
	WrapStyle int
	Style     Style
	Events    []Event
}

// Render serializes the script in section order: info, styles, events.
func (s *Script) Render() string {
	var b strings.Builder

	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", s.PlayResX)
	fmt.Fprintf(&b, "PlayResY: %d\n", s.PlayResY)
	fmt.Fprintf(&b, "WrapStyle: %d\n", s.WrapStyle)
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b, "Style: %s,%s,%d,%s,%s,%s,%s,0,0,0,0,100,100,0,0,4,%g,0,%d,0,0,0,1\n",
		s.Style.Name,
		s.Style.FontName,
		s.Style.FontSize,
		s.Style.Primary.ASS(),
		s.Style.Primary.ASS(),
		s.Style.Outline.ASS(),
		s.Style.Back.ASS(),
		s.Style.OutlineWidth,
		AlignMiddleCenter,
	)
	b.WriteString("\n")

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, ev := range s.Events {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			Timestamp(ev.Start), Timestamp(ev.End), ev.Style, ev.Text)
	}

	return b.String()
}

// Timestamp formats a duration as H:MM:SS.CC with centisecond truncation.
// Negative durations clamp to zero.
func Timestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := int64(d / (10 * time.Millisecond))
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	sec := cs / 100
	cs -= sec * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, sec, cs)
}

// Overrides builds the inline override block that pins an event to a fixed
// anchor and clips its drawing to a region. Coordinates are PlayRes pixels;
// the clip rectangle is inclusive of its min edge and exclusive of nothing,
// libass treats it as a hard mask.
func Overrides(align int, anchor image.Point, clip image.Rectangle) string {
	return fmt.Sprintf(`{\an%d\pos(%d,%d)\clip(%d,%d,%d,%d)}`,
		align, anchor.X, anchor.Y, clip.Min.X, clip.Min.Y, clip.Max.X, clip.Max.Y)
}
