package app

// Key binding constants used in the per-page key handlers.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeyTab       = "tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyJ         = "j"
	KeyK         = "k"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyBackspace = "backspace"
	KeyRefresh   = "ctrl+r"
	KeyNew       = "n"
	KeyDelete    = "d"
	KeyUpload    = "u"
	KeyReset     = "ctrl+p"
)
