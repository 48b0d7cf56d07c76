package render

// DefaultIconKey is used when an article names an icon the table does not
// carry. An unknown key must never fail a build.
const DefaultIconKey = "article"

// iconTable maps front-matter icon keys to display glyphs. Hand-maintained;
// extend it when content starts using a new key.
var iconTable = map[string]string{
	"article":   "✎",
	"pen":       "✎",
	"cpu":       "⚙",
	"chip":      "⚙",
	"database":  "🗄",
	"search":    "🔍",
	"zap":       "⚡",
	"bolt":      "⚡",
	"circuit":   "⏦",
	"code":      "⌨",
	"terminal":  "⌨",
	"queue":     "⇶",
	"pipeline":  "⇶",
	"graph":     "📈",
	"book":      "📖",
	"wrench":    "🔧",
	"flask":     "⚗",
	"rocket":    "🚀",
	"cloud":     "☁",
	"lock":      "🔒",
	"globe":     "🌐",
	"mail":      "✉",
	"github":    "⎇",
	"linkedin":  "in",
	"rss":       "📡",
	"lightbulb": "💡",
}

// Icon resolves an icon key to its glyph, falling back to the default
// placeholder for unknown keys.
func Icon(key string) string {
	if glyph, ok := iconTable[key]; ok {
		return glyph
	}
	return iconTable[DefaultIconKey]
}

// KnownIcon reports whether the key resolves without the fallback.
func KnownIcon(key string) bool {
	_, ok := iconTable[key]
	return ok
}
