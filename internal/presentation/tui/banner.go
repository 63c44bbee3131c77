package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the airdesk banner and version to w.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	lines := []struct {
		text  string
		color string
	}{
		{`     _    _         _           _    `, "#38bdf8"},
		{`    / \  (_)_ __ __| | ___  ___| | __`, "#60a5fa"},
		{`   / _ \ | | '__/ _' |/ _ \/ __| |/ /`, "#818cf8"},
		{`  / ___ \| | | | (_| |  __/\__ \   < `, "#a78bfa"},
		{` /_/   \_\_|_|  \__,_|\___||___/_|\_\`, "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  airline self-service desk v"+version).Faint())
	fmt.Fprintln(w)
}
