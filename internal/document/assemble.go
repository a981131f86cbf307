package document

import (
	"github.com/odemir/go-teklif/internal/models"
)

// Assemble builds the printable description of an offer. It does not
// mutate its inputs; optional fields that are empty simply produce no
// block in the output.
func Assemble(company models.Company, offer models.Offer) Document {
	doc := Document{
		Title:         "TEKLİF",
		Company:       companyBlock(company),
		Customer:      customerBlock(offer.Customer),
		DateLabel:     "TEKLİF TARİHİ",
		DateValue:     FormatDate(offer.Date),
		Table:         itemsTable(offer.Items),
		Summary:       summary(offer.Totals),
		FooterPattern: "Sayfa {current} / {total}",
	}
	if offer.Notes != "" {
		doc.Notes = "Notlar: " + offer.Notes
	}
	return doc
}

func companyBlock(c models.Company) PartyBlock {
	b := PartyBlock{
		Name: c.Name,
		Logo: c.Logo,
	}
	if b.Name == "" {
		b.Name = "Firma Adı"
	}
	for _, line := range []string{c.Address, c.Phone, c.Email, c.Website} {
		if line != "" {
			b.Lines = append(b.Lines, line)
		}
	}
	b.TaxNo = c.TaxNo
	return b
}

func customerBlock(c models.Customer) PartyBlock {
	b := PartyBlock{
		Title: "MÜŞTERİ",
		Name:  c.Name,
	}
	for _, line := range []string{c.Address, c.Phone, c.Email} {
		if line != "" {
			b.Lines = append(b.Lines, line)
		}
	}
	b.TaxNo = c.TaxNo
	return b
}

func itemsTable(items []models.OfferItem) ItemsTable {
	t := ItemsTable{
		Columns: []Column{
			{Title: "Hizmet / Ürün", Align: AlignLeft},
			{Title: "Miktar", Align: AlignCenter},
			{Title: "Br. Fiyat", Align: AlignRight},
			{Title: "KDV", Align: AlignCenter},
			{Title: "Toplam", Align: AlignRight},
		},
	}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{
			it.Name,
			FormatQuantity(it.Quantity) + " " + it.Unit,
			FormatCurrency(it.Price),
			FormatPercent(it.Tax),
			FormatCurrency(it.Total()),
		})
	}
	return t
}

func summary(t models.Totals) []SummaryLine {
	return []SummaryLine{
		{Label: "ARA TOPLAM", Value: FormatCurrency(t.Subtotal)},
		{Label: "TOPLAM K.D.V", Value: FormatCurrency(t.Tax)},
		{Label: "GENEL TOPLAM", Value: FormatCurrency(t.Total), Emphasis: true},
	}
}
