package report

import (
	"math"

	"github.com/go-pdf/fpdf"
)

// RowLayout draws table rows whose cells wrap independently. The row height is computed once
// from the wrapped line counts and every cell of the row is framed at that height.
type RowLayout struct {
	Widths     []float64
	Aligns     []string
	LineHeight float64
}

// Height is the height of a row whose cells wrap into the given numbers of lines.
func (l *RowLayout) Height(lineCounts []int) float64 {
	return float64(maxLines(lineCounts)) * l.LineHeight
}

// LineCounts wraps each cell with the current font of pdf.
func (l *RowLayout) LineCounts(pdf *fpdf.Fpdf, cells []string) []int {
	wrapped := l.wrap(pdf, cells)
	counts := make([]int, len(wrapped))
	for i, lines := range wrapped {
		counts[i] = len(lines)
	}
	return counts
}

// Row draws cells at the current position and moves to the start of the next row. A row that
// does not fit on the current page starts a new one. A row taller than a page continues on the
// following pages, each part framed on its own page.
func (l *RowLayout) Row(pdf *fpdf.Fpdf, cells []string) {
	wrapped := l.wrap(pdf, cells)
	total := 1
	for _, lines := range wrapped {
		if len(lines) > total {
			total = len(lines)
		}
	}

	left := pdf.GetX()
	if room := l.linesLeft(pdf); room < total && (total <= l.linesPerPage(pdf) || room < 1) {
		pdf.AddPage()
	}
	for offset, fresh := 0, true; offset < total; {
		n := l.linesLeft(pdf)
		if n < 1 && !fresh {
			pdf.AddPage()
			fresh = true
			continue
		}
		if n < 1 {
			n = 1
		}
		if n > total-offset {
			n = total - offset
		}
		l.drawPart(pdf, left, wrapped, offset, n)
		offset += n
		fresh = false
	}
}

// drawPart frames lines [offset, offset+n) of every cell at the current line.
func (l *RowLayout) drawPart(pdf *fpdf.Fpdf, left float64, wrapped [][][]byte, offset, n int) {
	top := pdf.GetY()
	height := float64(n) * l.LineHeight
	x := left
	for i, lines := range wrapped {
		pdf.Rect(x, top, l.Widths[i], height, "D")
		for j := offset; j < offset+n && j < len(lines); j++ {
			pdf.SetXY(x, top+float64(j-offset)*l.LineHeight)
			pdf.CellFormat(l.Widths[i], l.LineHeight, string(lines[j]), "", 0, l.align(i), false, 0, "")
		}
		x += l.Widths[i]
	}
	pdf.SetXY(left, top+height)
}

func (l *RowLayout) wrap(pdf *fpdf.Fpdf, cells []string) [][][]byte {
	wrapped := make([][][]byte, len(cells))
	for i, text := range cells {
		wrapped[i] = pdf.SplitLines([]byte(text), l.Widths[i])
	}
	return wrapped
}

// linesLeft is the number of whole lines between the cursor and the bottom margin.
func (l *RowLayout) linesLeft(pdf *fpdf.Fpdf) int {
	_, pageHeight := pdf.GetPageSize()
	_, bottomMargin := pdf.GetAutoPageBreak()
	return int(math.Floor((pageHeight - bottomMargin - pdf.GetY()) / l.LineHeight))
}

// linesPerPage is the number of lines between the margins of an empty page.
func (l *RowLayout) linesPerPage(pdf *fpdf.Fpdf) int {
	_, pageHeight := pdf.GetPageSize()
	_, top, _, bottom := pdf.GetMargins()
	return int(math.Floor((pageHeight - top - bottom) / l.LineHeight))
}

func (l *RowLayout) align(i int) string {
	if i < len(l.Aligns) && l.Aligns[i] != "" {
		return l.Aligns[i]
	}
	return "L"
}

func maxLines(counts []int) int {
	lines := 1
	for _, n := range counts {
		if n > lines {
			lines = n
		}
	}
	return lines
}
