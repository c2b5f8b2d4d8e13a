package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/zcplot_go/internal/parser"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)

	maxPreviewColumns = 10
)

// ReportMeta describes the run a PDF report documents.
type ReportMeta struct {
	Title    string
	Version  string
	Date     string
	Input    string
	PlotFunc string
	Ingest   string
	Kwargs   []string
}

// pdfStyler holds reusable styling and the flowing cursor position.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["mono"] = func() {
		s.pdf.SetFont("Courier", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 8)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 8)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableCellMissing"] = func() {
		s.pdf.SetFont("Arial", "I", 8)
		s.pdf.SetTextColor(200, 0, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := s.pdf.SplitText(text, pdfContentWidth)
	s.checkAddPage(math.Max(1, float64(len(lines))) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// addImage places a PNG scaled to the content width, keeping its aspect ratio.
func (s *pdfStyler) addImage(imageBytes []byte, imageName string, caption string) {
	info := s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))
	if info == nil || s.pdf.Err() {
		return
	}
	width := pdfContentWidth * 0.9
	height := width * info.Height() / info.Width()
	if maxHeight := s.pageHeight - s.contentTopY - 2*s.lineHeight; height > maxHeight {
		width *= maxHeight / height
		height = maxHeight
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.Image(imageName, pdfMargin+(pdfContentWidth-width)/2, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// addTable draws the first rows of tbl. Wide tables are cut to the first
// maxPreviewColumns columns.
func (s *pdfStyler) addTable(tbl *parser.Table, rows int) {
	names := tbl.Names()
	if len(names) > maxPreviewColumns {
		s.writeParagraph(fmt.Sprintf("Showing %d of %d columns.", maxPreviewColumns, len(names)), "normal", "L")
		names = names[:maxPreviewColumns]
	}
	n := min(rows, tbl.NumRows())
	colWidth := (pdfContentWidth - 12) / float64(len(names))

	header := func() {
		sX := pdfMargin
		s.applyStyle("tableHeader")
		s.pdf.SetXY(sX, s.currentY)
		s.pdf.CellFormat(12, s.lineHeight, "#", "1", 0, "C", true, 0, "")
		sX += 12
		for _, name := range names {
			s.pdf.SetXY(sX, s.currentY)
			label := name
			for s.pdf.GetStringWidth(label) > colWidth-2 && len(label) > 4 {
				label = label[:len(label)-4] + "..."
			}
			s.pdf.CellFormat(colWidth, s.lineHeight, label, "1", 0, "C", true, 0, "")
			sX += colWidth
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	header()
	cols := make([][]float64, len(names))
	for i, name := range names {
		cols[i], _ = tbl.Column(name)
	}
	for r := 0; r < n; r++ {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			header()
		}
		sX := pdfMargin
		s.applyStyle("tableCell")
		s.pdf.SetXY(sX, s.currentY)
		s.pdf.CellFormat(12, s.lineHeight, strconv.Itoa(r), "1", 0, "C", false, 0, "")
		sX += 12
		for _, col := range cols {
			s.pdf.SetXY(sX, s.currentY)
			text := "missing"
			if math.IsNaN(col[r]) {
				s.applyStyle("tableCellMissing")
			} else {
				s.applyStyle("tableCell")
				text = strconv.FormatFloat(col[r], 'g', 6, 64)
			}
			s.pdf.CellFormat(colWidth, s.lineHeight, text, "1", 0, "C", false, 0, "")
			sX += colWidth
		}
		s.currentY += s.lineHeight
	}
	if n < tbl.NumRows() {
		s.writeParagraph(fmt.Sprintf("... %d more rows", tbl.NumRows()-n), "normal", "L")
	}
}

// BuildPDFReport writes a PDF documenting one run: its metadata and kwargs, a
// preview of the first rows of the normalized table and the rendered plot.
func BuildPDFReport(filepath string, meta ReportMeta, tbl *parser.Table, rows int, plotPNG []byte) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetTitle(meta.Title, true)
	pdf.SetCreator("zcplot "+meta.Version, true)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph(meta.Title, "h1", "C")
	styler.addSpacer(5)
	styler.writeParagraph(fmt.Sprintf("zcplot ver. %s, generated %s", meta.Version, meta.Date), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Input file: %s", meta.Input), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Plot function: %s (%s ingest)", meta.PlotFunc, meta.Ingest), "normal", "L")
	styler.addSpacer(3)

	styler.writeParagraph("Keyword arguments", "h2", "L")
	if len(meta.Kwargs) == 0 {
		styler.writeParagraph("None.", "normal", "L")
	}
	for _, kw := range meta.Kwargs {
		styler.writeParagraph(kw, "mono", "L")
	}
	styler.addSpacer(5)

	styler.writeParagraph(fmt.Sprintf("Data (%d rows x %d columns)", tbl.NumRows(), tbl.NumCols()), "h2", "L")
	if tbl.NumCols() == 0 || tbl.NumRows() == 0 {
		styler.writeParagraph("Empty table.", "normal", "L")
	} else {
		styler.addTable(tbl, rows)
	}

	if len(plotPNG) > 0 {
		styler.newPage()
		styler.writeParagraph("Plot", "h1", "C")
		styler.addSpacer(5)
		styler.addImage(plotPNG, "plot", meta.PlotFunc)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return pdf.OutputFileAndClose(filepath)
}
