package styles

import (
	"fmt"
	"strings"
)

// Theme maps the CSS custom properties used as color hints to concrete
// colors.
type Theme struct {
	Name       string
	Primary    string
	Secondary  string
	Text       string
	Background string
}

var (
	// Night is the dark theme and the default.
	Night = Theme{
		Name:       "night",
		Primary:    "#6366f1",
		Secondary:  "#8b5cf6",
		Text:       "#ffffff",
		Background: "#0f172a",
	}

	// Day is the light theme.
	Day = Theme{
		Name:       "day",
		Primary:    "#4f46e5",
		Secondary:  "#7c3aed",
		Text:       "#ffffff",
		Background: "#f8fafc",
	}
)

// ThemeByName returns the theme called name.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case Night.Name:
		return Night, true
	case Day.Name:
		return Day, true
	}
	return Theme{}, false
}

// vars lists the custom properties the theme defines.
func (t Theme) vars() map[string]string {
	return map[string]string{
		"primary":    t.Primary,
		"secondary":  t.Secondary,
		"text":       t.Text,
		"background": t.Background,
	}
}

// CSS returns a rule declaring the theme's custom properties on the root
// <svg> element.
func (t Theme) CSS() string {
	return fmt.Sprintf("svg { --primary: %s; --secondary: %s; --text: %s; --background: %s; }",
		t.Primary, t.Secondary, t.Text, t.Background)
}

// Resolve turns a "var(--name)" hint into the theme's color. Other values
// are returned unchanged, as are unknown variables.
func (t Theme) Resolve(color string) string {
	name, ok := strings.CutPrefix(strings.TrimSpace(color), "var(--")
	if !ok {
		return color
	}
	name, ok = strings.CutSuffix(name, ")")
	if !ok {
		return color
	}
	if v, ok := t.vars()[strings.TrimSpace(name)]; ok {
		return v
	}
	return color
}
