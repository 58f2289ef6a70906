package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"stint/internal/trial"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")). // Purple
			Bold(true).
			Padding(0, 1)

	footnoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light Gray
)

// Console renders a summary as a small table, durations as fixed 3-decimal
// milliseconds.
type Console struct {
	Out io.Writer
}

func (c *Console) Report(s *trial.Summary) error {
	header := fmt.Sprintf("%d trials x %d reps", s.Trials, s.Reps)
	fmt.Fprintln(c.Out, headerStyle.Render(header))

	w := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\tPER TRIAL\tPER REP\n")
	fmt.Fprintf(w, "mean\t%s\t%s\n", FormatMs(s.Mean), FormatMs(s.MeanPerRep))
	fmt.Fprintf(w, "min\t%s\t%s\n", FormatMs(s.Min), FormatMs(s.MinPerRep))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(c.Out, footnoteStyle.Render(
		fmt.Sprintf("%d resources released", s.Resources)))
	return nil
}
