package models

// Company holds the issuing company's profile shown on every offer.
// It is a singleton: the repository materializes an empty one on first
// read and it is only ever mutated, never deleted.
type Company struct {
	Name      string `json:"name"`
	TaxNo     string `json:"taxNo"`
	TaxOffice string `json:"taxOffice"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Website   string `json:"website"`
	// Logo is an opaque reference (typically a data URI) passed through
	// to the document renderer untouched.
	Logo string `json:"logo"`
}
