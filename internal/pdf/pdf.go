// Package pdf renders a document description to PDF bytes with
// maroto. It is the only place that knows about the PDF backend; the
// assembler upstream stays renderer-agnostic.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pkg/errors"

	"github.com/odemir/go-teklif/internal/document"
	"github.com/odemir/go-teklif/internal/models"
)

// Filename is the download name for a rendered offer:
// Teklif_<offerNo>_<YYYY-MM-DD>.pdf.
func Filename(offer models.Offer) string {
	return fmt.Sprintf("Teklif_%s_%s.pdf", offer.OfferNo, offer.Date.Format("2006-01-02"))
}

// Render lays the document out on A4 and returns the PDF bytes.
func Render(doc document.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: doc.FooterPattern,
			Place:   props.RightBottom,
			Size:    8,
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc)
	m.AddRow(6)
	addItemsTable(m, doc.Table)
	m.AddRow(6)
	addSummary(m, doc.Summary)
	if doc.Notes != "" {
		m.AddRow(6)
		m.AddRow(5, text.NewCol(12, doc.Notes, props.Text{Size: 8, Style: fontstyle.Italic}))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "pdf: generate")
	}
	return out.GetBytes(), nil
}

// Fallback produces the minimal single-line document used when the
// regular render fails, so the caller always has something to hand
// out.
func Fallback(message string) ([]byte, error) {
	m := maroto.New()
	m.AddRow(8, text.NewCol(12, message, props.Text{Size: 10}))
	out, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "pdf: generate fallback")
	}
	return out.GetBytes(), nil
}

// addHeader emits the company identity block with the big title on its
// right, then the customer block and the offer date.
func addHeader(m core.Maroto, doc document.Document) {
	m.AddRow(10,
		text.NewCol(7, doc.Company.Name, props.Text{Size: 11, Style: fontstyle.Bold}),
		text.NewCol(5, doc.Title, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, l := range doc.Company.Lines {
		m.AddRow(4, text.NewCol(7, l, props.Text{Size: 8}))
	}
	if doc.Company.TaxNo != "" {
		m.AddRow(4, text.NewCol(7, "Vergi No: "+doc.Company.TaxNo, props.Text{Size: 8}))
	}

	m.AddRow(3, line.NewCol(12))
	m.AddRow(5, text.NewCol(12, doc.Customer.Title, props.Text{Size: 9, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, doc.Customer.Name, props.Text{Size: 10, Style: fontstyle.Bold}))
	for _, l := range doc.Customer.Lines {
		m.AddRow(4, text.NewCol(12, l, props.Text{Size: 8}))
	}
	if doc.Customer.TaxNo != "" {
		m.AddRow(4, text.NewCol(12, "Vergi No: "+doc.Customer.TaxNo, props.Text{Size: 8}))
	}
	m.AddRow(6,
		text.NewCol(6, doc.DateLabel, props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewCol(6, doc.DateValue, props.Text{Size: 9, Align: align.Right}),
	)
}

// columnSpans distributes the 12-column grid over the 5 table columns.
var columnSpans = []int{5, 2, 2, 1, 2}

func addItemsTable(m core.Maroto, table document.ItemsTable) {
	headerCols := make([]core.Col, 0, len(table.Columns))
	for i, c := range table.Columns {
		headerCols = append(headerCols, text.NewCol(columnSpans[i], c.Title,
			props.Text{Size: 8, Style: fontstyle.Bold, Align: alignOf(c.Align)}))
	}
	m.AddRows(row.New(6).Add(headerCols...))
	m.AddRow(1, line.NewCol(12))

	for _, r := range table.Rows {
		cols := make([]core.Col, 0, len(r))
		for i, cell := range r {
			cols = append(cols, text.NewCol(columnSpans[i], cell,
				props.Text{Size: 8, Align: alignOf(table.Columns[i].Align)}))
		}
		m.AddRows(row.New(5).Add(cols...))
	}
}

func addSummary(m core.Maroto, lines []document.SummaryLine) {
	for _, l := range lines {
		size := 8.0
		if l.Emphasis {
			m.AddRow(2, col.New(7), line.NewCol(5))
			size = 9
		}
		m.AddRow(5,
			col.New(7),
			text.NewCol(3, l.Label, props.Text{Size: size, Style: fontstyle.Bold}),
			text.NewCol(2, l.Value, props.Text{Size: size, Style: fontstyle.Bold, Align: align.Right}),
		)
	}
}

func alignOf(a document.Alignment) align.Type {
	switch a {
	case document.AlignCenter:
		return align.Center
	case document.AlignRight:
		return align.Right
	default:
		return align.Left
	}
}
