package domain

// Medicine is a catalog entry. SupplierName is a copy of the supplier's
// display name, not a reference.
type Medicine struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Packing      string `db:"packing" json:"packing"`
	GenericName  string `db:"generic_name" json:"generic_name"`
	SupplierName string `db:"supplier_name" json:"supplier_name"`
	CreatedAt    string `db:"created_at" json:"created_at"`
}
