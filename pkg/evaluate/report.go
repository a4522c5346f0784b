package evaluate

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Render writes the per-label tables and the overall accuracy line to w.
func Render(w io.Writer, reports []LabelReport, overall float64) {
	for _, report := range reports {
		fmt.Fprintf(w, "Label: %s (accuracy %.4f)\n", report.Label, report.Accuracy)

		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetHeader([]string{"class", "precision", "recall", "f1-score", "support"})
		for _, c := range report.Classes {
			table.Append([]string{
				fmt.Sprintf("%d", c.Class),
				fmt.Sprintf("%.4f", c.Precision),
				fmt.Sprintf("%.4f", c.Recall),
				fmt.Sprintf("%.4f", c.F1),
				fmt.Sprintf("%d", c.Support),
			})
		}
		table.Render()
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Overall accuracy: %.4f\n", overall)
}
