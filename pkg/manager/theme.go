package manager

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the lipgloss styles used to paint the browser.
//
// Style slots (keys of the settings "colors" map):
//
//	marker            tree marker and indentation of ordinary rows
//	marker_highlight  marker of the highlighted row
//	text              text of ordinary rows
//	highlight         text of the highlighted row
//	count             "(N)" child count of groups
//	comment           leaf '#' comments (when show_comments is on)
//	scrollbar         scrollbar column
//	footer            status / help line
//	prompt            search prompt
type Theme struct {
	Enabled bool

	Marker          lipgloss.Style
	MarkerHighlight lipgloss.Style
	Text            lipgloss.Style
	Highlight       lipgloss.Style
	Count           lipgloss.Style
	Comment         lipgloss.Style
	ScrollBar       lipgloss.Style
	Footer          lipgloss.Style
	Prompt          lipgloss.Style
}

var styleSlots = []string{
	"marker", "marker_highlight", "text", "highlight", "count",
	"comment", "scrollbar", "footer", "prompt",
}

func isStyleSlot(name string) bool {
	for _, s := range styleSlots {
		if s == name {
			return true
		}
	}
	return false
}

func (t *Theme) slot(name string) *lipgloss.Style {
	switch name {
	case "marker":
		return &t.Marker
	case "marker_highlight":
		return &t.MarkerHighlight
	case "text":
		return &t.Text
	case "highlight":
		return &t.Highlight
	case "count":
		return &t.Count
	case "comment":
		return &t.Comment
	case "scrollbar":
		return &t.ScrollBar
	case "footer":
		return &t.Footer
	case "prompt":
		return &t.Prompt
	}
	return nil
}

// LoadTheme resolves the theme named in the settings and applies color overrides.
// SSHGO_THEME overrides the settings name.
func LoadTheme(cfg *Config, env string) Theme {
	name := "auto"
	if cfg != nil && cfg.Theme != "" {
		name = cfg.Theme
	}
	if v := strings.ToLower(strings.TrimSpace(env)); v != "" {
		name = v
	}
	t, ok := themeByName(name)
	if !ok {
		t = AutoTheme()
	}
	if cfg != nil && t.Enabled {
		for k, v := range cfg.Colors {
			if dst := t.slot(k); dst != nil {
				*dst = parseStyleSpec(v)
			}
		}
	}
	return t
}

func themeByName(name string) (Theme, bool) {
	switch name {
	case "", "auto":
		return AutoTheme(), true
	case "none", "off", "disabled":
		return NoTheme(), true
	case "dark":
		return DarkTheme(), true
	case "light":
		return LightTheme(), true
	case "catppuccin", "catppuccin-mocha", "mocha":
		return CatppuccinMochaTheme(), true
	}
	return Theme{}, false
}

// NoTheme renders plain text, except that the highlighted row is shown in reverse
// video so the cursor stays visible.
func NoTheme() Theme {
	return Theme{
		Highlight:       lipgloss.NewStyle().Reverse(true),
		MarkerHighlight: lipgloss.NewStyle().Reverse(true),
	}
}

// AutoTheme picks DarkTheme unless the environment disables color (NO_COLOR, dumb terminals).
func AutoTheme() Theme {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return NoTheme()
	}
	return DarkTheme()
}

// DarkTheme mirrors the classic curses palette: red markers, white-on-blue cursor.
func DarkTheme() Theme {
	return Theme{
		Enabled:         true,
		Marker:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		MarkerHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Background(lipgloss.Color("4")),
		Text:            lipgloss.NewStyle(),
		Highlight:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		Count:           lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Comment:         lipgloss.NewStyle().Faint(true),
		ScrollBar:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
		Footer:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Prompt:          lipgloss.NewStyle().Bold(true),
	}
}

// LightTheme is DarkTheme with colors that read on light backgrounds.
func LightTheme() Theme {
	t := DarkTheme()
	t.Highlight = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
	t.MarkerHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Background(lipgloss.Color("14"))
	t.Count = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	t.Footer = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return t
}

// CatppuccinMochaTheme approximates Catppuccin Mocha with 256-color codes.
func CatppuccinMochaTheme() Theme {
	return Theme{
		Enabled:         true,
		Marker:          lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		MarkerHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("216")).Background(lipgloss.Color("237")),
		Text:            lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("216")).Background(lipgloss.Color("237")),
		Count:           lipgloss.NewStyle().Foreground(lipgloss.Color("147")),
		Comment:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ScrollBar:       lipgloss.NewStyle().Foreground(lipgloss.Color("183")).Background(lipgloss.Color("236")),
		Footer:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Prompt:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("44")),
	}
}

// parseStyleSpec turns a user-friendly description into a style.
// Examples:
//
//	"bold red"             bold, red foreground
//	"white on blue"        white foreground, blue background
//	"color214"             256-color foreground
//	"#ff8800 on color236"  truecolor foreground, 256-color background
//	"faint" / "reverse"    attributes
//
// Unknown tokens are ignored.
func parseStyleSpec(spec string) lipgloss.Style {
	st := lipgloss.NewStyle()
	background := false
	for _, tok := range strings.Fields(strings.ToLower(spec)) {
		switch tok {
		case "on":
			background = true
			continue
		case "bold":
			st = st.Bold(true)
			continue
		case "faint", "dim":
			st = st.Faint(true)
			continue
		case "italic":
			st = st.Italic(true)
			continue
		case "underline", "ul":
			st = st.Underline(true)
			continue
		case "reverse":
			st = st.Reverse(true)
			continue
		case "strike", "strikethrough":
			st = st.Strikethrough(true)
			continue
		}
		c, ok := parseColor(tok)
		if !ok {
			continue
		}
		if background {
			st = st.Background(c)
		} else {
			st = st.Foreground(c)
		}
	}
	return st
}

var namedColors = map[string]string{
	"black": "0", "red": "1", "green": "2", "yellow": "3",
	"blue": "4", "magenta": "5", "cyan": "6", "white": "7",
	"gray": "8", "grey": "8",
	"bright-red": "9", "bright-green": "10", "bright-yellow": "11", "bright-blue": "12",
	"bright-magenta": "13", "bright-cyan": "14", "bright-white": "15",
	"teal": "44", "mauve": "183", "lavender": "147", "peach": "216", "rose": "175",
}

func parseColor(tok string) (lipgloss.Color, bool) {
	if v, ok := namedColors[tok]; ok {
		return lipgloss.Color(v), true
	}
	if strings.HasPrefix(tok, "#") && (len(tok) == 7 || len(tok) == 4) {
		return lipgloss.Color(tok), true
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(tok, "color")); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(strconv.Itoa(n)), true
	}
	return "", false
}
