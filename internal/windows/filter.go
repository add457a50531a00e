package windows

// desktopComponents are compositor and shell processes whose surfaces cover
// the desktop but are never useful crop targets.
var desktopComponents = map[string]bool{
	"plasmashell":            true,
	"krunner":                true,
	"kded5":                  true,
	"kded6":                  true,
	"kwin_wayland":           true,
	"kwin_x11":               true,
	"xdg-desktop-portal":     true,
	"xdg-desktop-portal-kde": true,
}

// IsDesktopComponent reports whether a process belongs to the desktop shell.
func IsDesktopComponent(process string) bool {
	return desktopComponents[process]
}
