package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/odemir/go-teklif/internal/kvstore"
	"github.com/odemir/go-teklif/internal/models"
)

func seedRepo(t *testing.T, repo *Repository) {
	t.Helper()
	ctx := context.Background()
	at(repo, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	if err := repo.SaveCompany(ctx, models.Company{Name: "ACME Ltd", TaxNo: "111"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.AddProduct(ctx, models.Product{Name: "Hosting", Unit: "Adet", Price: 100, Tax: 20}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.AddOffer(ctx, validOffer("Müşteri A")); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.AddOffer(ctx, validOffer("Müşteri B")); err != nil {
		t.Fatal(err)
	}
}

func TestExportSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedRepo(t, repo)

	snap, err := repo.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot() error: %v", err)
	}
	if snap.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", snap.Version)
	}
	if snap.Company.Name != "ACME Ltd" || len(snap.Products) != 1 || len(snap.Offers) != 2 {
		t.Errorf("snapshot content unexpected: %+v", snap)
	}

	// Idempotent: a second export sees the same data.
	again, err := repo.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("second ExportSnapshot() error: %v", err)
	}
	if len(again.Offers) != len(snap.Offers) || len(again.Products) != len(snap.Products) {
		t.Error("second export differs from the first")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestRepo(t)
	seedRepo(t, src)

	snap, err := src.ExportSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}

	dst := New(kvstore.NewMemory())
	if err := dst.ImportSnapshot(ctx, raw); err != nil {
		t.Fatalf("ImportSnapshot() error: %v", err)
	}

	for _, cmp := range []struct {
		name string
		a, b func() (any, error)
	}{
		{"company",
			func() (any, error) { return src.Company(ctx) },
			func() (any, error) { return dst.Company(ctx) }},
		{"products",
			func() (any, error) { return src.Products(ctx) },
			func() (any, error) { return dst.Products(ctx) }},
		{"offers",
			func() (any, error) { return src.Offers(ctx) },
			func() (any, error) { return dst.Offers(ctx) }},
	} {
		av, err := cmp.a()
		if err != nil {
			t.Fatal(err)
		}
		bv, err := cmp.b()
		if err != nil {
			t.Fatal(err)
		}
		aj, _ := json.Marshal(av)
		bj, _ := json.Marshal(bv)
		if string(aj) != string(bj) {
			t.Errorf("%s differs after round trip:\n%s\n%s", cmp.name, aj, bj)
		}
	}
}

func TestImportSnapshot_PartialPayload(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedRepo(t, repo)

	// Only products present: company and offers stay untouched.
	payload := []byte(`{"products":[{"id":"prod_x","name":"Yeni","unit":"Adet","price":5,"tax":10}]}`)
	if err := repo.ImportSnapshot(ctx, payload); err != nil {
		t.Fatalf("ImportSnapshot() error: %v", err)
	}

	products, _ := repo.Products(ctx)
	if len(products) != 1 || products[0].Name != "Yeni" {
		t.Errorf("products not replaced: %+v", products)
	}
	company, _ := repo.Company(ctx)
	if company.Name != "ACME Ltd" {
		t.Errorf("company was touched by a partial import: %+v", company)
	}
	offers, _ := repo.Offers(ctx)
	if len(offers) != 2 {
		t.Errorf("offers were touched by a partial import: %d", len(offers))
	}
}

func TestImportSnapshot_MalformedAppliesNothing(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedRepo(t, repo)

	cases := []string{
		`not json at all`,
		`"just a string"`,
		`[1,2,3]`,
		`{"company":"should be an object"}`,
		`{"company":{"name":"Evil"},"products":{"not":"a list"}}`,
	}
	for _, raw := range cases {
		err := repo.ImportSnapshot(ctx, []byte(raw))
		if err == nil {
			t.Errorf("payload %q was accepted", raw)
			continue
		}
		company, _ := repo.Company(ctx)
		if company.Name != "ACME Ltd" {
			t.Fatalf("payload %q partially applied: company = %+v", raw, company)
		}
	}
}

func TestImportSnapshot_IgnoresUnknownKeys(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	payload := []byte(`{"company":{"name":"Yeni Firma"},"futureKey":{"x":1}}`)
	if err := repo.ImportSnapshot(ctx, payload); err != nil {
		t.Fatalf("ImportSnapshot() error: %v", err)
	}
	company, _ := repo.Company(ctx)
	if company.Name != "Yeni Firma" {
		t.Errorf("company = %+v", company)
	}
}
