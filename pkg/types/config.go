package types

// Text size steps for the presentation layer.
const (
	TextSizeSmall  = 0
	TextSizeMedium = 1
	TextSizeLarge  = 2
)

// Recognized theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Recognized screen size values.
const (
	ScreenWindowed   = "windowed"
	ScreenMaximized  = "maximized"
	ScreenFullscreen = "fullscreen"
)

// DefaultItemsPerPage is the page size used when the preference is missing
// or malformed.
const DefaultItemsPerPage = 15

// Preferences is the persisted preference document. Missing or malformed
// keys fall back to their documented defaults; a broken preferences file is
// never a fatal error.
type Preferences struct {
	TextSize     int    `mapstructure:"text_size" yaml:"text_size" json:"text_size"`
	Theme        string `mapstructure:"theme" yaml:"theme" json:"theme"`
	ItemsPerPage int    `mapstructure:"items_per_page" yaml:"items_per_page" json:"items_per_page"`
	ScreenSize   string `mapstructure:"screen_size" yaml:"screen_size" json:"screen_size"`
}

// DefaultPreferences returns the documented defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		TextSize:     TextSizeMedium,
		Theme:        ThemeAuto,
		ItemsPerPage: DefaultItemsPerPage,
		ScreenSize:   ScreenWindowed,
	}
}

var validThemes = map[string]bool{
	ThemeLight: true,
	ThemeDark:  true,
	ThemeAuto:  true,
}

var validScreenSizes = map[string]bool{
	ScreenWindowed:   true,
	ScreenMaximized:  true,
	ScreenFullscreen: true,
}

// Normalize replaces out-of-range values with their defaults, key by key.
// One malformed key does not reset the others.
func (p *Preferences) Normalize() {
	def := DefaultPreferences()
	if p.TextSize < TextSizeSmall || p.TextSize > TextSizeLarge {
		p.TextSize = def.TextSize
	}
	if !validThemes[p.Theme] {
		p.Theme = def.Theme
	}
	if p.ItemsPerPage <= 0 {
		p.ItemsPerPage = def.ItemsPerPage
	}
	if !validScreenSizes[p.ScreenSize] {
		p.ScreenSize = def.ScreenSize
	}
}
