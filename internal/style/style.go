package style

import (
	"strconv"
	"strings"
)

// Color selects one of the basic ANSI foreground colors.
type Color int

const (
	// NoColor leaves the foreground untouched.
	NoColor Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
)

const (
	csi = "\x1b["

	codeColorReset = "39"
	codeBold       = "1"
	codeDim        = "2"
	codeIntensity  = "22"
	codeItalic     = "3"
	codeItalicOff  = "23"
	codeUnderline  = "4"
	codeUnderOff   = "24"
)

// String returns the lower-case color name.
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Blue:
		return "blue"
	case Magenta:
		return "magenta"
	case Cyan:
		return "cyan"
	default:
		return ""
	}
}

func (c Color) valid() bool {
	return c >= Red && c <= Cyan
}

// Style is an immutable description of how a value should look on a
// terminal. The zero Style renders text unchanged.
type Style struct {
	Color      Color
	Bold       bool
	Dim        bool
	Italic     bool
	Underlined bool
}

// IsZero reports whether the style sets no attribute at all.
func (s Style) IsZero() bool {
	return !s.Color.valid() && !s.Bold && !s.Dim && !s.Italic && !s.Underlined
}

// Sequences returns the opening and closing escape sequences for s. Both are
// empty when s sets nothing. Reset codes appear in the same order as their
// attributes and a code shared by two attributes is emitted once.
func (s Style) Sequences() (open, reset string) {
	codes := make([]string, 0, 5)
	resets := make([]string, 0, 5)
	addReset := func(code string) {
		for _, existing := range resets {
			if existing == code {
				return
			}
		}
		resets = append(resets, code)
	}

	if s.Color.valid() {
		codes = append(codes, strconv.Itoa(30+int(s.Color)))
		addReset(codeColorReset)
	}
	if s.Bold {
		codes = append(codes, codeBold)
		addReset(codeIntensity)
	}
	if s.Dim {
		codes = append(codes, codeDim)
		addReset(codeIntensity)
	}
	if s.Italic {
		codes = append(codes, codeItalic)
		addReset(codeItalicOff)
	}
	if s.Underlined {
		codes = append(codes, codeUnderline)
		addReset(codeUnderOff)
	}
	if len(codes) == 0 {
		return "", ""
	}
	return csi + strings.Join(codes, ";") + "m", csi + strings.Join(resets, ";") + "m"
}

// Render wraps text in the escape sequences of s.
func (s Style) Render(text string) string {
	open, reset := s.Sequences()
	if open == "" {
		return text
	}
	return open + text + reset
}

// Renderer returns the render function for s. When enabled is false, or when
// s sets nothing, the returned function is the identity.
func (s Style) Renderer(enabled bool) func(string) string {
	if !enabled {
		return identity
	}
	open, reset := s.Sequences()
	if open == "" {
		return identity
	}
	return func(text string) string {
		return open + text + reset
	}
}

// Name returns a plain-text label for the style, such as "format_red_bold".
// It is the fallback description used where escapes cannot be shown.
func (s Style) Name() string {
	labels := make([]string, 0, 5)
	if s.Color.valid() {
		labels = append(labels, s.Color.String())
	}
	if s.Bold {
		labels = append(labels, "bold")
	}
	if s.Dim {
		labels = append(labels, "dim")
	}
	if s.Italic {
		labels = append(labels, "italic")
	}
	if s.Underlined {
		labels = append(labels, "underlined")
	}
	if len(labels) == 0 {
		return "format_plain"
	}
	return "format_" + strings.Join(labels, "_")
}

// Apply pairs value with s. The rendering decision is left to the sink.
func (s Style) Apply(value any) Styled {
	return Styled{Value: value, Style: s}
}

// Activate binds value to the escape-emitting renderer of s.
func (s Style) Activate(value any) Activated {
	return Activated{Value: value, render: s.Renderer(true)}
}

func identity(text string) string {
	return text
}
