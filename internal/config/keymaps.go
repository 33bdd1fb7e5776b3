package config

// KeyMappings defines the configurable key bindings of the terminal board
type KeyMappings struct {
	// Navigation
	PrevColumn string `yaml:"prev_column" toml:"prev_column"`
	NextColumn string `yaml:"next_column" toml:"next_column"`
	PrevItem   string `yaml:"prev_item" toml:"prev_item"`
	NextItem   string `yaml:"next_item" toml:"next_item"`

	// Moving a grabbed card
	Grab      string `yaml:"grab" toml:"grab"`
	MoveLeft  string `yaml:"move_left" toml:"move_left"`
	MoveRight string `yaml:"move_right" toml:"move_right"`
	MoveUp    string `yaml:"move_up" toml:"move_up"`
	MoveDown  string `yaml:"move_down" toml:"move_down"`

	// Other
	Refresh  string `yaml:"refresh" toml:"refresh"`
	ShowHelp string `yaml:"show_help" toml:"show_help"`
	Quit     string `yaml:"quit" toml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn: "h",
		NextColumn: "l",
		PrevItem:   "k",
		NextItem:   "j",

		Grab:      "space",
		MoveLeft:  "H",
		MoveRight: "L",
		MoveUp:    "K",
		MoveDown:  "J",

		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	d := DefaultKeyMappings()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&k.PrevColumn, d.PrevColumn)
	fill(&k.NextColumn, d.NextColumn)
	fill(&k.PrevItem, d.PrevItem)
	fill(&k.NextItem, d.NextItem)
	fill(&k.Grab, d.Grab)
	fill(&k.MoveLeft, d.MoveLeft)
	fill(&k.MoveRight, d.MoveRight)
	fill(&k.MoveUp, d.MoveUp)
	fill(&k.MoveDown, d.MoveDown)
	fill(&k.Refresh, d.Refresh)
	fill(&k.ShowHelp, d.ShowHelp)
	fill(&k.Quit, d.Quit)
}
