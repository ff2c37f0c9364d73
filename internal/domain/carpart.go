package domain

// CarPart - запчасть на складе.
// stockQuantity уменьшается сервером при проведении строки заказ-наряда,
// клиент складскими остатками не управляет.
type CarPart struct {
	ID               int64     `json:"id"`
	UUID             string    `json:"uuid"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	CostPrice        float64   `json:"costPrice"`
	SellingPrice     float64   `json:"sellingPrice"`
	VatRate          float64   `json:"vatRate"`
	Barcode          string    `json:"barcode"`
	StockQuantity    float64   `json:"stockQuantity"`
	MinStockQuantity float64   `json:"minStockQuantity"`
	Supplier         *Supplier `json:"supplier,omitempty"`
	CreatedAt        int64     `json:"createdAt"`
	UpdatedAt        int64     `json:"updatedAt"`
}

// CarPartDTO - payload создания и обновления запчасти.
type CarPartDTO struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	CostPrice        float64 `json:"costPrice"`
	SellingPrice     float64 `json:"sellingPrice"`
	VatRate          float64 `json:"vatRate"`
	Barcode          string  `json:"barcode"`
	StockQuantity    float64 `json:"stockQuantity"`
	MinStockQuantity float64 `json:"minStockQuantity"`
	SupplierUUID     string  `json:"supplierUuid"`
}

// Validate проверяет поля формы запчасти.
func (d *CarPartDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	errs.required("supplierUuid", d.SupplierUUID)
	errs.nonNegative("costPrice", d.CostPrice)
	errs.nonNegative("sellingPrice", d.SellingPrice)
	errs.nonNegative("vatRate", d.VatRate)
	errs.nonNegative("stockQuantity", d.StockQuantity)
	return errs.err()
}
