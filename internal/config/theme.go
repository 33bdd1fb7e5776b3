package config

// Theme defines the configurable colors of board output
type Theme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset" toml:"preset"`

	Accent         string `yaml:"accent" toml:"accent"`
	ColumnBorder   string `yaml:"column_border" toml:"column_border"`
	CardBorder     string `yaml:"card_border" toml:"card_border"`
	SelectedBorder string `yaml:"selected_border" toml:"selected_border"`
	GrabbedBorder  string `yaml:"grabbed_border" toml:"grabbed_border"`

	Title  string `yaml:"title" toml:"title"`
	Subtle string `yaml:"subtle" toml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal" toml:"normal"`
	Error  string `yaml:"error" toml:"error"`
}

// DefaultTheme returns the default color scheme (purple theme)
func DefaultTheme() Theme {
	return Theme{
		Preset:         "default",
		Accent:         "#874BFD",
		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		GrabbedBorder:  "#FFD700",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		Error:          "#FF0000",
	}
}

// MonochromeTheme returns a black and white color scheme
func MonochromeTheme() Theme {
	return Theme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		ColumnBorder:   "#FFFFFF",
		CardBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		GrabbedBorder:  "#FFFFFF",
		Title:          "#FFFFFF",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		Error:          "#FFFFFF",
	}
}

// GetPreset returns a preset theme by name, falling back to the default
func GetPreset(name string) Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// ApplyDefaults fills in missing colors from the preset, keeping custom values
func (t *Theme) ApplyDefaults() {
	p := GetPreset(t.Preset)
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&t.Preset, p.Preset)
	fill(&t.Accent, p.Accent)
	fill(&t.ColumnBorder, p.ColumnBorder)
	fill(&t.CardBorder, p.CardBorder)
	fill(&t.SelectedBorder, p.SelectedBorder)
	fill(&t.GrabbedBorder, p.GrabbedBorder)
	fill(&t.Title, p.Title)
	fill(&t.Subtle, p.Subtle)
	fill(&t.Normal, p.Normal)
	fill(&t.Error, p.Error)
}
