package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/xrinput/tracker"
)

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	detail  lipgloss.Style
	ok      lipgloss.Style
	warning lipgloss.Style
	faint   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(6),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ok:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		faint:   lipgloss.NewStyle().Faint(true),
	}
}

var statusStyles = newStyles()

func renderStatus(st monitorStatus) string {
	s := statusStyles
	lines := []string{
		s.title.Render("xrbridge monitor"),
		s.header.Render(fmt.Sprintf("client: %s  mode: %s  frame: %d  factor: %.3f",
			st.Client, st.Mode, st.FrameID, st.DataFactor)),
		renderTracked(s, "pen", st.Pen.Status, st.Pen.Position,
			fmt.Sprintf("buttons: %s", buttonString(st.Pen.Buttons))),
		renderTracked(s, "head", st.Head.Status, st.Head.Position, ""),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTracked(s styles, name, status string, pos [3]float64, extra string) string {
	statusStyle := s.warning
	if status == tracker.Detected.String() {
		statusStyle = s.ok
	}
	parts := []string{
		s.label.Render(name),
		statusStyle.Render(status),
		" ",
		s.detail.Render(fmt.Sprintf("(%.3f, %.3f, %.3f)", pos[0], pos[1], pos[2])),
	}
	if extra != "" {
		parts = append(parts, " ", s.faint.Render(extra))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func buttonString(mask uint8) string {
	var b strings.Builder
	for i, name := range []string{"L", "R", "M"} {
		if mask&(1<<uint(i)) != 0 {
			b.WriteString(name)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
