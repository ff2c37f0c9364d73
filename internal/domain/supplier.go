package domain

// Supplier - поставщик запчастей.
type Supplier struct {
	ID           int64  `json:"id"`
	UUID         string `json:"uuid"`
	Name         string `json:"name"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	County       string `json:"county"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	CreatedAt    int64  `json:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// SupplierDTO - payload создания и обновления поставщика.
type SupplierDTO struct {
	Name         string `json:"name"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	County       string `json:"county"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

// Validate проверяет поля формы поставщика.
func (d *SupplierDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	errs.required("email", d.Email)
	errs.email("email", d.Email)
	return errs.err()
}
