package commentary

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/xtding233/innings-sim/internal/innings"
)

// Style decorates lines for a terminal. The zero Style prints plain text.
type Style struct {
	Header   *lipgloss.Style
	Boundary *lipgloss.Style
	Wicket   *lipgloss.Style
	Result   *lipgloss.Style
}

// TerminalStyle colors output for w using a renderer detected from w.
func TerminalStyle(w io.Writer) Style {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boundary := r.NewStyle().Foreground(lipgloss.Color("10"))
	wicket := r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	result := r.NewStyle().Bold(true).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	return Style{Header: &header, Boundary: &boundary, Wicket: &wicket, Result: &result}
}

func render(s *lipgloss.Style, line string) string {
	if s == nil {
		return line
	}
	return s.Render(line)
}

// Commentator writes commentary as the engine reports it. Write errors are
// kept and returned by Err; the innings itself is never interrupted.
type Commentator struct {
	w     io.Writer
	style Style
	err   error
}

func New(w io.Writer, style Style) *Commentator {
	return &Commentator{w: w, style: style}
}

func (c *Commentator) println(line string) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintln(c.w, line)
}

func (c *Commentator) OverStarted(s innings.OverStart) {
	c.println("")
	c.println(render(c.style.Header, OverLine(s)))
}

func (c *Commentator) BallBowled(ev innings.BallEvent) {
	line := BallLine(ev)
	switch {
	case ev.Outcome.IsOut():
		line = render(c.style.Wicket, line)
	case ev.Outcome == 4 || ev.Outcome == 6:
		line = render(c.style.Boundary, line)
	}
	c.println(line)
}

func (c *Commentator) InningsEnded(r innings.Result) {
	c.println("")
	c.println(render(c.style.Result, ResultLine(r)))
	for _, card := range r.Batters {
		c.println(CardLine(card))
	}
	c.println(ScoreLine(r))
}

func (c *Commentator) Err() error { return c.err }

// Transcript collects plain commentary lines in memory.
type Transcript struct {
	Lines []string
}

func (t *Transcript) OverStarted(s innings.OverStart) {
	t.Lines = append(t.Lines, OverLine(s))
}

func (t *Transcript) BallBowled(ev innings.BallEvent) {
	t.Lines = append(t.Lines, BallLine(ev))
}

func (t *Transcript) InningsEnded(r innings.Result) {
	t.Lines = append(t.Lines, ResultLine(r))
	for _, card := range r.Batters {
		t.Lines = append(t.Lines, CardLine(card))
	}
	t.Lines = append(t.Lines, ScoreLine(r))
}
