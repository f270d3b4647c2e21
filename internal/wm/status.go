package wm

import (
	"fmt"
	"strings"
)

// StatusReport renders the line-oriented status dump: screens, their
// desktops, their clients, left to right. The field set and nesting are a
// compatibility contract with external consumers; change with care.
func (s *Server) StatusReport() string {
	var b strings.Builder
	for _, scr := range s.screens {
		fmt.Fprintf(&b, "screen %s %s %s modes:%s\n",
			scr.Name,
			formatRect(scr.Geometry),
			selectedFlag(scr == s.CurrentScreen()),
			strings.Join(scr.Modes, ","),
		)
		for _, d := range scr.desktops {
			fmt.Fprintf(&b, "\tdesktop %s %s\n",
				d.Name,
				selectedFlag(d == scr.FocusedDesktop()),
			)
			for _, c := range d.Clients() {
				fmt.Fprintf(&b, "\t\tclient %s %s %s\n",
					formatRect(c.Box),
					selectedFlag(c == d.Focused()),
					c.Title,
				)
			}
		}
	}
	return b.String()
}

func formatRect(r Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

func selectedFlag(selected bool) string {
	if selected {
		return "*"
	}
	return "-"
}
