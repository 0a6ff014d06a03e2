package icon

// Icon names a symbol the CLI prints next to its output.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Skip
	Video
	Provider
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "+",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・_・)",
		squares: "🟨",
	},
	Skip: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   ">>",
		kaomoji: "ε=ε=(ノ≧∇≦)ノ",
		squares: "🟦",
	},
	Video: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "*",
		kaomoji: "(⌐■_■)",
		squares: "⬛",
	},
	Provider: {
		emoji:   "🔌",
		nerd:    "",
		plain:   "@",
		kaomoji: "(っ˘ڡ˘ς)",
		squares: "🟫",
	},
}
