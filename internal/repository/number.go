package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/odemir/go-teklif/internal/models"
	"github.com/odemir/go-teklif/internal/xid"
)

// numberPrefix is the human-facing offer number prefix: TEK-YYYY-NNNN.
const numberPrefix = "TEK"

func newProductID() string { return xid.New("prod") }
func newOfferID() string   { return xid.New("offer") }
func newItemID() string    { return xid.New("item") }

// nextOfferNumber picks the sequence for a new offer in the given
// year: one past the highest sequence already used by an offer whose
// number carries that year, starting at 1. Scoping to the embedded
// year keeps numbering gap-free and monotonic even when offers from
// other years are deleted.
func nextOfferNumber(offers []models.Offer, year int) string {
	maxSeq := 0
	for _, o := range offers {
		y, seq, ok := parseOfferNumber(o.OfferNo)
		if ok && y == year && seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s-%d-%04d", numberPrefix, year, maxSeq+1)
}

// parseOfferNumber splits PREFIX-YYYY-NNNN into its year and sequence.
func parseOfferNumber(no string) (year, seq int, ok bool) {
	parts := strings.Split(no, "-")
	if len(parts) < 3 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, 0, false
	}
	seq, err = strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, 0, false
	}
	return year, seq, true
}
