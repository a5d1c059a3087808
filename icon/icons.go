package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Stop
	Mute
	Fullscreen
	Repeat
	Next
	Previous
	Playlist
	Library
	Link
	Upload
	Mark
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "\uf00c",
		plain:   "+",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "\uf00d",
		plain:   "x",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf252",
		plain:   "~",
		kaomoji: "(・_・ヾ",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "\uf04b",
		plain:   ">",
		kaomoji: "(>‿◠)",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "\uf04c",
		plain:   "||",
		kaomoji: "(－_－)",
		squares: "⏸",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "\uf04d",
		plain:   "[]",
		kaomoji: "(￣^￣)",
		squares: "⏹",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "\uf6a9",
		plain:   "m",
		kaomoji: "(・・;)",
		squares: "⬛",
	},
	Fullscreen: {
		emoji:   "🖥️",
		nerd:    "\uf065",
		plain:   "F",
		kaomoji: "(□_□)",
		squares: "🔲",
	},
	Repeat: {
		emoji:   "🔁",
		nerd:    "\uf01e",
		plain:   "R",
		kaomoji: "(↻_↻)",
		squares: "🔄",
	},
	Next: {
		emoji:   "⏭️",
		nerd:    "\uf051",
		plain:   ">>",
		kaomoji: "(→_→)",
		squares: "⏭",
	},
	Previous: {
		emoji:   "⏮️",
		nerd:    "\uf048",
		plain:   "<<",
		kaomoji: "(←_←)",
		squares: "⏮",
	},
	Playlist: {
		emoji:   "📃",
		nerd:    "\uf03a",
		plain:   "#",
		kaomoji: "(≧▽≦)",
		squares: "🟪",
	},
	Library: {
		emoji:   "📁",
		nerd:    "\uf07b",
		plain:   "/",
		kaomoji: "(⌐■_■)",
		squares: "🟫",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "\uf0c1",
		plain:   "@",
		kaomoji: "(o_O)",
		squares: "🟦",
	},
	Upload: {
		emoji:   "📤",
		nerd:    "\uf093",
		plain:   "^",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟧",
	},
	Mark: {
		emoji:   "✔️",
		nerd:    "\uf005",
		plain:   "*",
		kaomoji: "(￣▽￣)",
		squares: "■",
	},
}
