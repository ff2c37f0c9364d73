package domain

// Service - работа из прайс-листа мастерской.
// amount - цена по умолчанию, в заказ-наряде её можно переопределить.
type Service struct {
	ID                  int64   `json:"id"`
	UUID                string  `json:"uuid"`
	Name                string  `json:"name"`
	Amount              float64 `json:"amount"`
	VatRate             float64 `json:"vatRate"`
	ElectronicDiagnosis bool    `json:"electronicDiagnosis"`
	CreatedAt           int64   `json:"createdAt"`
	UpdatedAt           int64   `json:"updatedAt"`
}

// ServiceDTO - payload создания и обновления работы.
type ServiceDTO struct {
	Name                string  `json:"name"`
	Amount              float64 `json:"amount"`
	VatRate             float64 `json:"vatRate"`
	ElectronicDiagnosis bool    `json:"electronicDiagnosis"`
}

// Validate проверяет поля формы работы.
func (d *ServiceDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	errs.nonNegative("amount", d.Amount)
	errs.nonNegative("vatRate", d.VatRate)
	return errs.err()
}
