// Package document turns a (company, offer) pair into an abstract
// printable-document description. The assembler is pure and
// deterministic: identical input yields an identical tree, so a given
// offer always renders to the same bytes downstream.
package document

// Alignment of a table column or text cell.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// PartyBlock describes one side of the header: the issuing company on
// the left, the customer on the right. Empty Lines entries are never
// emitted; an absent tax number omits its label entirely.
type PartyBlock struct {
	Title string
	Name  string
	Lines []string
	TaxNo string
	Logo  string
}

// Column is a header cell of the items table.
type Column struct {
	Title string
	Align Alignment
}

// ItemsTable lists every offer line with pre-formatted cell strings.
type ItemsTable struct {
	Columns []Column
	Rows    [][]string
}

// SummaryLine is one row of the totals block, right-aligned; the grand
// total carries Emphasis.
type SummaryLine struct {
	Label    string
	Value    string
	Emphasis bool
}

// Document is the renderer-agnostic description consumed by the PDF
// layer.
type Document struct {
	Title     string
	Company   PartyBlock
	Customer  PartyBlock
	DateLabel string
	DateValue string
	Table     ItemsTable
	Summary   []SummaryLine
	// Notes is empty when the offer has none; renderers omit the block.
	Notes         string
	FooterPattern string
}
