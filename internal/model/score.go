package model

// ScoreSettings configures the G-code that scores a crease pattern into a
// physical sheet with a drag knife or scoring wheel.
type ScoreSettings struct {
	Profile    string  `json:"profile" koanf:"profile"`         // Controller profile name
	SheetSize  float64 `json:"sheet_size" koanf:"sheet_size"`   // Edge of the square sheet (mm)
	FeedRate   float64 `json:"feed_rate" koanf:"feed_rate"`     // Scoring speed (mm/min)
	PlungeRate float64 `json:"plunge_rate" koanf:"plunge_rate"` // Z plunge speed (mm/min)
	SafeZ      float64 `json:"safe_z" koanf:"safe_z"`           // Travel height (mm)
	ScoreDepth float64 `json:"score_depth" koanf:"score_depth"` // Depth of the score line (mm)
	OriginX    float64 `json:"origin_x" koanf:"origin_x"`       // Machine position of the sheet's (0,0) corner
	OriginY    float64 `json:"origin_y" koanf:"origin_y"`
}

func DefaultScoreSettings() ScoreSettings {
	return ScoreSettings{
		Profile:    "Grbl",
		SheetSize:  150,
		FeedRate:   1200,
		PlungeRate: 300,
		SafeZ:      3,
		ScoreDepth: 0.2,
	}
}

// GCodeProfile defines a post-processor configuration for different controllers.
type GCodeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	StartCode []string `json:"start_code"` // Commands at start of file
	ToolOn    string   `json:"tool_on"`    // Lower or enable the scoring tool
	ToolOff   string   `json:"tool_off"`

	RapidMove string `json:"rapid_move"` // G0 or equivalent
	FeedMove  string `json:"feed_move"`  // G1 or equivalent

	EndCode []string `json:"end_code"` // Commands at end of file; [SafeZ] is replaced

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`

	DecimalPlaces int `json:"decimal_places"`
}

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl controllers with a drag knife or scoring wheel on Z",
		StartCode:     []string{"G90", "G21", "G17"},
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC with parenthesised comments",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "Plotter",
		Description:   "Pen plotters that raise and lower a creasing stylus with M3/M5",
		StartCode:     []string{"G90", "G21"},
		ToolOn:        "M3",
		ToolOff:       "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 2,
	},
}

// GetProfile returns a GCode profile by name, or the first profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[0]
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}
