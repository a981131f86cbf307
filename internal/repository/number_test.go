package repository

import (
	"testing"

	"github.com/odemir/go-teklif/internal/models"
)

func TestParseOfferNumber(t *testing.T) {
	tests := []struct {
		in       string
		wantYear int
		wantSeq  int
		wantOK   bool
	}{
		{"TEK-2025-0001", 2025, 1, true},
		{"TEK-2024-0173", 2024, 173, true},
		{"TEK-2025-10000", 2025, 10000, true},
		{"garbage", 0, 0, false},
		{"TEK-abcd-0001", 0, 0, false},
		{"TEK-2025-xyz", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		year, seq, ok := parseOfferNumber(tt.in)
		if year != tt.wantYear || seq != tt.wantSeq || ok != tt.wantOK {
			t.Errorf("parseOfferNumber(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.in, year, seq, ok, tt.wantYear, tt.wantSeq, tt.wantOK)
		}
	}
}

func TestNextOfferNumber(t *testing.T) {
	offersOf := func(nos ...string) []models.Offer {
		out := make([]models.Offer, len(nos))
		for i, no := range nos {
			out[i] = models.Offer{OfferNo: no}
		}
		return out
	}

	tests := []struct {
		name   string
		offers []models.Offer
		year   int
		want   string
	}{
		{"empty history", nil, 2025, "TEK-2025-0001"},
		{"continues this year", offersOf("TEK-2025-0002", "TEK-2025-0001"), 2025, "TEK-2025-0003"},
		{"ignores other years", offersOf("TEK-2024-0009"), 2025, "TEK-2025-0001"},
		{"gap after deletion keeps max", offersOf("TEK-2025-0005"), 2025, "TEK-2025-0006"},
		{"mixed years", offersOf("TEK-2024-0100", "TEK-2025-0002", "TEK-2023-0044"), 2025, "TEK-2025-0003"},
		{"unparseable numbers skipped", offersOf("draft", "TEK-2025-0001"), 2025, "TEK-2025-0002"},
		{"sequence beyond padding", offersOf("TEK-2025-9999"), 2025, "TEK-2025-10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextOfferNumber(tt.offers, tt.year); got != tt.want {
				t.Errorf("nextOfferNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}
