package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the summary as a single-column A4 document at path.
func WritePDF(s *Summary, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Stepwise Progress Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 6, fmt.Sprintf("Generated: %s", s.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	if s.CurrentStep == 0 {
		pdf.Cell(40, 6, "The program has not been started yet.")
		pdf.Ln(6)
	} else {
		pdf.Cell(40, 6, fmt.Sprintf("Current step: %s", s.CurrentLabel))
		pdf.Ln(6)
		pdf.Cell(40, 6, fmt.Sprintf("Started: %s (day %d)", s.StartDate, s.DaysIn))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Checklists")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	if len(s.Steps) == 0 {
		pdf.Cell(40, 6, "No practices marked yet.")
		pdf.Ln(6)
	}
	for _, st := range s.Steps {
		mark := "[ ]"
		if st.Complete() {
			mark = "[x]"
		}
		pdf.Cell(12, 6, mark)
		pdf.Cell(130, 6, st.Label())
		pdf.Cell(20, 6, fmt.Sprintf("%d/%d", st.Done, st.Total))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 8, fmt.Sprintf("Total practices marked: %d", s.Marked))
	pdf.Ln(8)
	pdf.Cell(40, 8, fmt.Sprintf("Steps fully completed: %d", s.FullSteps))

	return pdf.OutputFileAndClose(path)
}
