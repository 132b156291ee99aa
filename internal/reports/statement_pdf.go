package reports

import (
	"bytes"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"

	"github.com/aifinance/aifinance-backend/internal/auth"
	"github.com/aifinance/aifinance-backend/internal/money"
)

// StatementPDF renders the statement as a downloadable PDF.
func (h *Handler) StatementPDF(c *fiber.Ctx) error {
	sess, ok := c.Locals("session").(*auth.Session)
	if !ok || sess == nil || sess.User == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := rangeFromQuery(c)
	if err != nil {
		return err
	}

	stmt, err := h.buildStatement(sess.User.ID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed statement")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 48)
	pdf.SetTextColor(235, 235, 235)
	pdf.Text(25, 140, "AIFINANCE")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "AIFinance Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Period: "+from+" to "+to)
	pdf.Ln(5)
	pdf.Cell(0, 6, "User: "+maskID(sess.User.ID))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Income ("+stmt.Currency+")", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Expense ("+stmt.Currency+")", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Balance ("+stmt.Currency+")", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, money.FormatPlain(stmt.TotalIncome), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, money.FormatPlain(stmt.TotalExpense), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, money.FormatPlain(stmt.Balance), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeTableHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(24, 8, "DATE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(84, 8, "DESCRIPTION", "1", 0, "L", true, 0, "")
		pdf.CellFormat(32, 8, "CATEGORY", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "AMOUNT", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(30, 30, 30)
	}
	writeTableHeader()

	const maxRows = 200
	for i, it := range stmt.Items {
		if i >= maxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "truncated: too many rows", "1", 1, "C", false, 0, "")
			break
		}

		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeTableHeader()
		}

		pdf.CellFormat(24, 8, it.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(84, 8, trimTo(it.Description, 60), "1", 0, "L", false, 0, "")
		pdf.CellFormat(32, 8, it.Category, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, money.Signed(it.Amount, it.IsExpense), "1", 1, "R", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated by AIFinance - "+time.Now().Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "pdf build failed: "+err.Error())
	}

	filename := "aifinance-statement-" + from + "-to-" + to + ".pdf"
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func maskID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 8 {
		return id
	}
	return id[:4] + "..." + id[len(id)-4:]
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
