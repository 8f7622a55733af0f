package cmd

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func cursorOf(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

// oneLine flattens s and shortens it to n runes.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
