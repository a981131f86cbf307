package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/odemir/go-teklif/internal/kvstore"
	"github.com/odemir/go-teklif/internal/models"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	return New(kvstore.NewMemory())
}

func at(repo *Repository, ts time.Time) {
	repo.now = func() time.Time { return ts }
}

func validOffer(customer string) models.Offer {
	return models.Offer{
		Customer: models.Customer{Name: customer},
		Items: []models.OfferItem{
			{Name: "Danışmanlık", Unit: "Saat", Quantity: 2, Price: 100, Tax: 20},
		},
	}
}

func TestCompany_FirstReadMaterializesDefault(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := New(store)

	c, err := repo.Company(ctx)
	if err != nil {
		t.Fatalf("Company() error: %v", err)
	}
	if c != (models.Company{}) {
		t.Errorf("first read = %+v, want zero company", c)
	}
	if _, ok, _ := store.Get(ctx, "quotation_company"); !ok {
		t.Error("first read did not persist the default company")
	}
}

func TestCompany_SaveAndReload(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	in := models.Company{Name: "ACME Ltd", TaxNo: "1234567890", Email: "info@acme.example"}
	if err := repo.SaveCompany(ctx, in); err != nil {
		t.Fatalf("SaveCompany() error: %v", err)
	}
	got, err := repo.Company(ctx)
	if err != nil {
		t.Fatalf("Company() error: %v", err)
	}
	if got != in {
		t.Errorf("Company() = %+v, want %+v", got, in)
	}
}

func TestCompany_CorruptRecordReadsAsDefault(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := New(store)

	_ = store.Set(ctx, "quotation_company", "{not json")
	c, err := repo.Company(ctx)
	if err != nil {
		t.Fatalf("Company() error: %v", err)
	}
	if c != (models.Company{}) {
		t.Errorf("corrupt read = %+v, want zero company", c)
	}
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	p, err := repo.AddProduct(ctx, models.Product{Name: "Hosting", Unit: "Adet", Price: 100, Tax: 20})
	if err != nil {
		t.Fatalf("AddProduct() error: %v", err)
	}
	if p.ID == "" {
		t.Error("AddProduct() did not assign an id")
	}

	products, err := repo.Products(ctx)
	if err != nil {
		t.Fatalf("Products() error: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Hosting" {
		t.Errorf("Products() = %+v, want the added product", products)
	}
}

func TestAddProduct_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.AddProduct(ctx, models.Product{Name: "", Price: -1})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("AddProduct() error = %v, want ValidationError", err)
	}
	if ve.Violations["name"] == "" || ve.Violations["price"] == "" {
		t.Errorf("violations = %v", ve.Violations)
	}
	products, _ := repo.Products(ctx)
	if len(products) != 0 {
		t.Errorf("rejected add changed the catalog: %+v", products)
	}
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	p, _ := repo.AddProduct(ctx, models.Product{Name: "Hosting", Unit: "Adet", Price: 100, Tax: 20})

	price := 150.0
	updated, err := repo.UpdateProduct(ctx, p.ID, models.ProductUpdate{Price: &price})
	if err != nil {
		t.Fatalf("UpdateProduct() error: %v", err)
	}
	if updated.Price != 150 || updated.Name != "Hosting" {
		t.Errorf("UpdateProduct() = %+v", updated)
	}

	if _, err := repo.UpdateProduct(ctx, "prod_missing", models.ProductUpdate{Price: &price}); err != ErrNotFound {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}

	bad := -10.0
	if _, err := repo.UpdateProduct(ctx, p.ID, models.ProductUpdate{Price: &bad}); err == nil {
		t.Error("negative price update was accepted")
	}
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	p, _ := repo.AddProduct(ctx, models.Product{Name: "Hosting", Price: 100, Tax: 20})
	if err := repo.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct() error: %v", err)
	}
	products, _ := repo.Products(ctx)
	if len(products) != 0 {
		t.Errorf("Products() after delete = %+v, want empty", products)
	}

	// Unknown id is a no-op.
	if err := repo.DeleteProduct(ctx, "prod_missing"); err != nil {
		t.Errorf("DeleteProduct(unknown) error: %v", err)
	}
}

func TestEnsureProduct(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first, created, err := repo.EnsureProduct(ctx, models.Product{Name: "Hosting", Price: 100, Tax: 20})
	if err != nil {
		t.Fatalf("EnsureProduct() error: %v", err)
	}
	if !created {
		t.Error("first EnsureProduct() should create")
	}

	second, created, err := repo.EnsureProduct(ctx, models.Product{Name: "Hosting", Price: 999, Tax: 1})
	if err != nil {
		t.Fatalf("EnsureProduct() error: %v", err)
	}
	if created {
		t.Error("second EnsureProduct() should reuse the existing product")
	}
	if second.ID != first.ID || second.Price != 100 {
		t.Errorf("EnsureProduct() = %+v, want the original %+v", second, first)
	}
}

func TestAddOffer_AssignsIdentityAndTotals(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	at(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	in := validOffer("ACME")
	in.Totals = models.Totals{Subtotal: 999, Tax: 999, Total: 999} // stale cache must be overwritten

	created, err := repo.AddOffer(ctx, in)
	if err != nil {
		t.Fatalf("AddOffer() error: %v", err)
	}
	if created.ID == "" {
		t.Error("AddOffer() did not assign an id")
	}
	if created.OfferNo != "TEK-2025-0001" {
		t.Errorf("OfferNo = %q, want TEK-2025-0001", created.OfferNo)
	}
	if created.UpdatedAt != nil {
		t.Error("new offer has an update timestamp")
	}
	want := models.Totals{Subtotal: 200, Tax: 40, Total: 240}
	if created.Totals != want {
		t.Errorf("Totals = %+v, want %+v", created.Totals, want)
	}
	for _, it := range created.Items {
		if it.ID == "" {
			t.Error("offer item missing id")
		}
	}
}

func TestAddOffer_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	cases := []models.Offer{
		{Items: validOffer("x").Items},                  // missing customer name
		{Customer: models.Customer{Name: "ACME"}},       // no items
		func() models.Offer {                            // zero quantity
			o := validOffer("ACME")
			o.Items[0].Quantity = 0
			return o
		}(),
		func() models.Offer { // negative price
			o := validOffer("ACME")
			o.Items[0].Price = -1
			return o
		}(),
	}

	for i, in := range cases {
		if _, err := repo.AddOffer(ctx, in); err == nil {
			t.Errorf("case %d: invalid offer was accepted", i)
		}
	}
	offers, _ := repo.Offers(ctx)
	if len(offers) != 0 {
		t.Errorf("rejected offers changed the history: %+v", offers)
	}
}

func TestOffers_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	at(repo, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	first, _ := repo.AddOffer(ctx, validOffer("First"))
	at(repo, time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	second, _ := repo.AddOffer(ctx, validOffer("Second"))

	offers, err := repo.Offers(ctx)
	if err != nil {
		t.Fatalf("Offers() error: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("Offers() returned %d offers, want 2", len(offers))
	}
	if offers[0].ID != second.ID || offers[1].ID != first.ID {
		t.Errorf("order = [%s %s], want most recent first", offers[0].OfferNo, offers[1].OfferNo)
	}
}

func TestOfferNumbering_SequentialWithinYear(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	at(repo, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	for i := 1; i <= 3; i++ {
		o, err := repo.AddOffer(ctx, validOffer("ACME"))
		if err != nil {
			t.Fatalf("AddOffer() error: %v", err)
		}
		want := []string{"", "TEK-2025-0001", "TEK-2025-0002", "TEK-2025-0003"}[i]
		if o.OfferNo != want {
			t.Errorf("offer %d number = %q, want %q", i, o.OfferNo, want)
		}
	}
}

func TestOfferNumbering_YearScopedAndDeletionTolerant(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	// A busy previous year.
	at(repo, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC))
	old1, _ := repo.AddOffer(ctx, validOffer("Old"))
	old2, _ := repo.AddOffer(ctx, validOffer("Old"))
	if old2.OfferNo != "TEK-2024-0002" {
		t.Fatalf("2024 numbering = %q", old2.OfferNo)
	}

	// First offer of the new year starts at 0001 regardless of history.
	at(repo, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))
	fresh, _ := repo.AddOffer(ctx, validOffer("New"))
	if fresh.OfferNo != "TEK-2025-0001" {
		t.Errorf("first 2025 number = %q, want TEK-2025-0001", fresh.OfferNo)
	}

	// Deleting other-year offers must not disturb this year's sequence.
	_ = repo.DeleteOffer(ctx, old1.ID)
	next, _ := repo.AddOffer(ctx, validOffer("New"))
	if next.OfferNo != "TEK-2025-0002" {
		t.Errorf("after other-year deletion = %q, want TEK-2025-0002", next.OfferNo)
	}

	// Deleting every offer of the current year resets its sequence.
	_ = repo.DeleteOffer(ctx, fresh.ID)
	_ = repo.DeleteOffer(ctx, next.ID)
	again, _ := repo.AddOffer(ctx, validOffer("New"))
	if again.OfferNo != "TEK-2025-0001" {
		t.Errorf("after clearing 2025 = %q, want TEK-2025-0001", again.OfferNo)
	}
}

func TestUpdateOffer(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	at(repo, created)

	o, _ := repo.AddOffer(ctx, validOffer("ACME"))

	later := created.Add(48 * time.Hour)
	at(repo, later)
	items := []models.OfferItem{
		{Name: "Bakım", Unit: "Ay", Quantity: 1, Price: 50, Tax: 10},
	}
	updated, err := repo.UpdateOffer(ctx, o.ID, models.OfferUpdate{Items: &items})
	if err != nil {
		t.Fatalf("UpdateOffer() error: %v", err)
	}
	if updated.OfferNo != o.OfferNo || updated.ID != o.ID || !updated.Date.Equal(o.Date) {
		t.Error("update changed offer identity")
	}
	if updated.UpdatedAt == nil || !updated.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, later)
	}
	want := models.Totals{Subtotal: 50, Tax: 5, Total: 55}
	if updated.Totals != want {
		t.Errorf("Totals = %+v, want recomputed %+v", updated.Totals, want)
	}

	if _, err := repo.UpdateOffer(ctx, "offer_missing", models.OfferUpdate{}); err != ErrNotFound {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, ok, err := repo.Draft(ctx); err != nil || ok {
		t.Fatalf("Draft() on empty store = ok=%v err=%v", ok, err)
	}

	draft := models.Offer{
		Customer: models.Customer{Name: "ACME"},
		Items: []models.OfferItem{
			{Name: "Taslak", Quantity: 1, Price: 10, Tax: 20},
		},
	}
	if err := repo.SaveDraft(ctx, draft); err != nil {
		t.Fatalf("SaveDraft() error: %v", err)
	}

	got, ok, err := repo.Draft(ctx)
	if err != nil || !ok {
		t.Fatalf("Draft() = ok=%v err=%v", ok, err)
	}
	if got.Customer.Name != "ACME" {
		t.Errorf("Draft() = %+v", got)
	}
	if got.Totals.Subtotal != 10 {
		t.Errorf("draft totals not recomputed on save: %+v", got.Totals)
	}

	if err := repo.ClearDraft(ctx); err != nil {
		t.Fatalf("ClearDraft() error: %v", err)
	}
	if _, ok, _ := repo.Draft(ctx); ok {
		t.Error("draft survived ClearDraft()")
	}
}

func TestCorruptCollectionsReadAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := New(store)

	_ = store.Set(ctx, "quotation_products", "[{broken")
	_ = store.Set(ctx, "quotation_offers", "42")

	if products, err := repo.Products(ctx); err != nil || len(products) != 0 {
		t.Errorf("Products() = %v, %v, want empty", products, err)
	}
	if offers, err := repo.Offers(ctx); err != nil || len(offers) != 0 {
		t.Errorf("Offers() = %v, %v, want empty", offers, err)
	}
}
