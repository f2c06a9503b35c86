package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// documentHeader is the title block drawn above the memo body.
type documentHeader struct {
	CompanyName string
	Subtitle    string
	Date        string
}

// pdfBackend renders a memo's Markdown into PDF bytes.
type pdfBackend interface {
	Name() string
	Available() bool
	Render(header documentHeader, markdown string) ([]byte, error)
}

// pdfBackends returns the candidate backends in preference order.
func pdfBackends(logger arbor.ILogger) []pdfBackend {
	return []pdfBackend{
		newFpdfBackend(logger),
	}
}

// fpdfBackend renders Markdown in process via goldmark and fpdf.
type fpdfBackend struct {
	logger arbor.ILogger
	md     goldmark.Markdown
}

func newFpdfBackend(logger arbor.ILogger) *fpdfBackend {
	return &fpdfBackend{
		logger: logger,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (b *fpdfBackend) Name() string { return "fpdf" }

// Available always reports true, this backend has no external dependencies.
func (b *fpdfBackend) Available() bool { return true }

func (b *fpdfBackend) Render(header documentHeader, markdown string) ([]byte, error) {
	source := []byte(markdown)
	doc := b.md.Parser().Parse(text.NewReader(source))

	r := newMemoRenderer(source)
	r.drawHeader(header)
	r.walk(doc)

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// memoRenderer walks the Markdown AST and emits PDF drawing commands.
// Inline style state (bold, italic) is tracked explicitly because fpdf has
// no style stack of its own.
type memoRenderer struct {
	pdf    *fpdf.Fpdf
	source []byte
	tr     func(string) string

	bold      bool
	italic    bool
	listDepth int
}

const bodyLineHeight = 5.0

func newMemoRenderer(source []byte) *memoRenderer {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	r := &memoRenderer{
		pdf:    pdf,
		source: source,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
	r.applyFont()
	return r
}

// drawHeader renders the centered title block on the first page.
func (r *memoRenderer) drawHeader(h documentHeader) {
	r.pdf.SetFont("Helvetica", "B", 22)
	r.pdf.CellFormat(0, 12, r.tr(h.CompanyName), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Helvetica", "", 13)
	r.pdf.SetTextColor(90, 90, 90)
	r.pdf.CellFormat(0, 8, r.tr(h.Subtitle), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.CellFormat(0, 6, r.tr("Generated on "+h.Date), "", 1, "C", false, 0, "")
	r.pdf.SetTextColor(0, 0, 0)

	r.pdf.Ln(3)
	pageW, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()
	y := r.pdf.GetY()
	r.pdf.SetDrawColor(160, 160, 160)
	r.pdf.Line(left, y, pageW-right, y)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.Ln(5)

	r.applyFont()
}

func (r *memoRenderer) walk(node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		r.render(child)
	}
}

func (r *memoRenderer) render(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		r.renderHeading(n)
	case *ast.Paragraph:
		r.renderInline(n)
		r.pdf.Ln(bodyLineHeight)
		r.pdf.Ln(2)
	case *ast.List:
		r.renderList(n)
	case *ast.FencedCodeBlock:
		r.renderCodeBlock(n.Lines())
	case *ast.CodeBlock:
		r.renderCodeBlock(n.Lines())
	case *ast.Blockquote:
		r.renderBlockquote(n)
	case *ast.ThematicBreak:
		r.renderRule()
	case *extast.Table:
		r.renderTable(n)
	default:
		r.walk(node)
	}
}

func (r *memoRenderer) renderHeading(h *ast.Heading) {
	// Every second-level section starts a fresh page so the memo, analysis,
	// and appendix sections read as separate documents.
	if h.Level == 2 {
		r.pdf.AddPage()
	}

	size := 11.0
	switch h.Level {
	case 1:
		size = 16
	case 2:
		size = 14
	case 3:
		size = 12
	}

	r.pdf.Ln(2)
	r.pdf.SetFont("Helvetica", "B", size)
	r.pdf.MultiCell(0, size*0.5, r.tr(r.collectText(h)), "", "L", false)
	r.pdf.Ln(2)
	r.applyFont()
}

// renderInline renders a container's inline children with the current
// style state.
func (r *memoRenderer) renderInline(node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			r.writeText(string(n.Segment.Value(r.source)))
			if n.SoftLineBreak() {
				r.writeText(" ")
			}
			if n.HardLineBreak() {
				r.pdf.Ln(bodyLineHeight)
			}
		case *ast.String:
			r.writeText(string(n.Value))
		case *ast.Emphasis:
			r.renderEmphasis(n)
		case *ast.CodeSpan:
			r.pdf.SetFont("Courier", "", 9)
			r.pdf.Write(bodyLineHeight, r.tr(r.collectText(n)))
			r.applyFont()
		case *ast.Link:
			r.renderInline(n)
		case *ast.AutoLink:
			r.writeText(string(n.URL(r.source)))
		default:
			r.renderInline(child)
		}
	}
}

func (r *memoRenderer) renderEmphasis(n *ast.Emphasis) {
	if n.Level >= 2 {
		r.bold = true
	} else {
		r.italic = true
	}
	r.applyFont()
	r.renderInline(n)
	if n.Level >= 2 {
		r.bold = false
	} else {
		r.italic = false
	}
	r.applyFont()
}

func (r *memoRenderer) renderList(l *ast.List) {
	r.listDepth++
	left, _, _, _ := r.pdf.GetMargins()
	index := 1

	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}

		r.pdf.SetX(left + float64(r.listDepth-1)*5)
		r.applyFont()
		r.pdf.Write(bodyLineHeight, r.tr(marker))

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch cn := c.(type) {
			case *ast.List:
				r.pdf.Ln(bodyLineHeight)
				r.renderList(cn)
			case *ast.TextBlock:
				r.renderInline(cn)
			case *ast.Paragraph:
				r.renderInline(cn)
			default:
				r.render(c)
			}
		}
		r.pdf.Ln(bodyLineHeight + 1)
	}

	r.listDepth--
	if r.listDepth == 0 {
		r.pdf.Ln(2)
	}
}

func (r *memoRenderer) renderCodeBlock(lines *text.Segments) {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(r.source))
	}

	r.pdf.Ln(1)
	r.pdf.SetFont("Courier", "", 9)
	r.pdf.SetFillColor(245, 245, 245)
	r.pdf.MultiCell(0, 4.5, r.tr(strings.TrimRight(b.String(), "\n")), "", "L", true)
	r.pdf.Ln(2)
	r.applyFont()
}

func (r *memoRenderer) renderBlockquote(n *ast.Blockquote) {
	left, _, _, _ := r.pdf.GetMargins()
	r.pdf.SetLeftMargin(left + 6)
	r.pdf.SetX(left + 6)
	r.italic = true
	r.applyFont()
	r.walk(n)
	r.italic = false
	r.pdf.SetLeftMargin(left)
	r.applyFont()
}

func (r *memoRenderer) renderRule() {
	r.pdf.Ln(2)
	pageW, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()
	y := r.pdf.GetY()
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.Line(left, y, pageW-right, y)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.Ln(4)
}

func (r *memoRenderer) renderTable(t *extast.Table) {
	var headers []string
	var rows [][]string
	for child := t.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			headers = r.collectRow(row)
		case *extast.TableRow:
			rows = append(rows, r.collectRow(row))
		}
	}

	cols := len(headers)
	if cols == 0 && len(rows) > 0 {
		cols = len(rows[0])
	}
	if cols == 0 {
		return
	}

	widths := r.tableColumnWidths(headers, rows, cols)

	r.pdf.Ln(2)
	if len(headers) > 0 {
		r.pdf.SetFont("Helvetica", "B", 9)
		r.pdf.SetFillColor(230, 230, 230)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(headers) {
				cell = headers[i]
			}
			r.pdf.CellFormat(widths[i], 7, r.fitCell(cell, widths[i]), "1", 0, "L", true, 0, "")
		}
		r.pdf.Ln(-1)
	}

	r.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			r.pdf.CellFormat(widths[i], 6, r.fitCell(cell, widths[i]), "1", 0, "L", false, 0, "")
		}
		r.pdf.Ln(-1)
	}
	r.pdf.Ln(4)
	r.applyFont()
}

func (r *memoRenderer) collectRow(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); ok {
			cells = append(cells, r.collectText(cell))
		}
	}
	return cells
}

// tableColumnWidths sizes columns to their widest content, scaled down
// proportionally when the table would overflow the printable width.
func (r *memoRenderer) tableColumnWidths(headers []string, rows [][]string, cols int) []float64 {
	pageW, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()
	available := pageW - left - right

	widths := make([]float64, cols)
	measure := func(cells []string) {
		for i := 0; i < cols && i < len(cells); i++ {
			if w := r.pdf.GetStringWidth(r.tr(cells[i])) + 4; w > widths[i] {
				widths[i] = w
			}
		}
	}

	r.pdf.SetFont("Helvetica", "B", 9)
	measure(headers)
	r.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		measure(row)
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > available {
		for i := range widths {
			widths[i] = widths[i] / total * available
		}
	}
	return widths
}

// fitCell truncates cell text with an ellipsis when it cannot fit its
// column width.
func (r *memoRenderer) fitCell(s string, width float64) string {
	s = r.tr(s)
	if r.pdf.GetStringWidth(s) <= width-2 {
		return s
	}
	for len(s) > 0 && r.pdf.GetStringWidth(s+"...") > width-2 {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// collectText flattens a node's subtree to plain text.
func (r *memoRenderer) collectText(node ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(r.source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func (r *memoRenderer) writeText(s string) {
	if s == "" {
		return
	}
	r.pdf.Write(bodyLineHeight, r.tr(s))
}

func (r *memoRenderer) applyFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont("Helvetica", style, 10)
}
