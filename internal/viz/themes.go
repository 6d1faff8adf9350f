package viz

import "github.com/lucasb-eyer/go-colorful"

// Theme defines the chrome around the map. Country fills always come from
// the color scale.
type Theme struct {
	Name      string
	Primary   string
	Accent    string
	Water     string
	Text      string
	Muted     string
	Border    string
	Highlight string
	Panel     string
}

var (
	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   "#e0f0ff",
		Accent:    "#ffd700",
		Water:     "#001a33",
		Text:      "#e0f0ff",
		Muted:     "#4488aa",
		Border:    "#335577",
		Highlight: "#000000",
		Panel:     "#0b2a45",
	}

	ThemePaper = Theme{
		Name:      "paper",
		Primary:   "#222222",
		Accent:    "#ff0000",
		Water:     "#ffffff",
		Text:      "#222222",
		Muted:     "#777777",
		Border:    "#888888",
		Highlight: "#000000",
		Panel:     "#f4f4f4",
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   "#ffffff",
		Accent:    "#0088ff",
		Water:     "#000000",
		Text:      "#ffffff",
		Muted:     "#888888",
		Border:    "#444444",
		Highlight: "#000000",
		Panel:     "#1a1a1a",
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   "#ff00ff",
		Accent:    "#00ffff",
		Water:     "#0a0a0a",
		Text:      "#ffffff",
		Muted:     "#666666",
		Border:    "#330033",
		Highlight: "#ff00ff",
		Panel:     "#1a001a",
	}

	// Themes lists every theme in cycling order.
	Themes = []Theme{
		ThemeOcean,
		ThemePaper,
		ThemeMinimal,
		ThemeCyberpunk,
	}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func hexColor(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
