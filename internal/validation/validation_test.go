package validation

import "testing"

func TestValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	PositiveFloat("quantity", 0, v)
	NonNegativeFloat("price", -1, v)
	RangeFloat("tax", 101, 0, 100, v)

	want := map[string]string{
		"name":     "required",
		"quantity": "must_be_positive",
		"price":    "must_not_be_negative",
		"tax":      "out_of_range",
	}
	for field, msg := range want {
		if v[field] != msg {
			t.Errorf("%s = %q, want %q", field, v[field], msg)
		}
	}

	ok := Violations{}
	Required("name", "ACME", ok)
	PositiveFloat("quantity", 1, ok)
	NonNegativeFloat("price", 0, ok)
	RangeFloat("tax", 20, 0, 100, ok)
	if !ok.Empty() {
		t.Errorf("expected no violations, got %v", ok)
	}
}
