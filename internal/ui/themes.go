package ui

// themeNames are quickdiff's builtin theme names, matching the set the
// original implementation shipped under src/theme.
var themeNames = []string{
	"default",
	"dracula",
	"catppuccin",
	"nord",
	"gruvbox",
	"tokyonight",
	"rosepine",
	"onedark",
	"solarized",
}

// chromaStyleMap maps a quickdiff theme name onto the closest chroma/v2
// style name, since chroma's bundled style set doesn't mirror quickdiff's
// theme names one for one.
var chromaStyleMap = map[string]string{
	"default":    "monokai",
	"dracula":    "dracula",
	"catppuccin": "catppuccin-mocha",
	"nord":       "nord",
	"gruvbox":    "gruvbox",
	"tokyonight": "dracula",
	"rosepine":   "rose-pine",
	"onedark":    "onedark",
	"solarized":  "solarized-dark",
}

// chromaStyleFor returns the chroma style name backing theme. Unknown
// theme names fall through to NewChromaHighlighter's own fallback.
func chromaStyleFor(theme string) string {
	if style, ok := chromaStyleMap[theme]; ok {
		return style
	}
	return theme
}

func themeIndex(name string) int {
	for i, t := range themeNames {
		if t == name {
			return i
		}
	}
	return 0
}

func isValidTheme(name string) bool {
	for _, t := range themeNames {
		if t == name {
			return true
		}
	}
	return false
}

// ThemeNames returns the builtin theme names quickdiff ships, for CLI
// flag validation and help text.
func ThemeNames() []string { return append([]string(nil), themeNames...) }

// IsValidTheme reports whether name is one of ThemeNames.
func IsValidTheme(name string) bool { return isValidTheme(name) }
