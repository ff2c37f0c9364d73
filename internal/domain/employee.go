package domain

// Employee - сотрудник мастерской, исполнитель заказ-нарядов.
type Employee struct {
	ID           int64  `json:"id"`
	UUID         string `json:"uuid"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	County       string `json:"county"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Phone        string `json:"phone"`
	CreatedAt    int64  `json:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// EmployeeDTO - payload создания и обновления сотрудника.
type EmployeeDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	County       string `json:"county"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Phone        string `json:"phone"`
}

// Validate проверяет поля формы сотрудника.
func (d *EmployeeDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	errs.minLen("name", d.Name, 3)
	errs.required("email", d.Email)
	errs.email("email", d.Email)
	return errs.err()
}
