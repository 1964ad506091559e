// Package render — PDF renderer.
// Lays out a recipe card using gofpdf: title, details, ingredients and
// numbered steps. Images are not embedded.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a recipe as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the recipe into PDF bytes.
func (r *PDFRenderer) Render(recipe *core.Recipe) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented text survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(orDefault(recipe.Title, "Untitled recipe")), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Source: "+recipe.URL), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if available(recipe.Description) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(recipe.Description), "", "L", false)
		pdf.Ln(3)
	}

	for _, line := range detailLines(recipe) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 5, tr(line[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(line[1]), "", "L", false)
	}

	if len(recipe.Ingredients) > 0 {
		renderHeading(pdf, "Ingredients")
		pdf.SetFont("Helvetica", "", 10)
		for _, ing := range recipe.Ingredients {
			pdf.MultiCell(0, 5, tr("• "+ingredientLine(ing)), "", "L", false)
		}
	}

	if steps := instructionSteps(recipe); len(steps) > 0 {
		renderHeading(pdf, "Instructions")
		pdf.SetFont("Helvetica", "", 10)
		for i, step := range steps {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%d. %s", i+1, step)), "", "L", false)
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading writes a section heading.
func renderHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, text, "", "L", false)
	pdf.Ln(1)
}
