package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Camera
	Clock
)

// icons maps each Icon identifier to its variant representations.
var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "[ok]",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "[!]",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(￣ー￣)ゞ",
		squares: "🟨",
	},
	Camera: {
		emoji:   "📸",
		nerd:    "",
		plain:   "[*]",
		kaomoji: "( •_•)>⌐■-■",
		squares: "🟦",
	},
	Clock: {
		emoji:   "🕐",
		nerd:    "",
		plain:   "[t]",
		kaomoji: "(o^-^)o",
		squares: "🟪",
	},
}
