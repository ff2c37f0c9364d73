package domain

// Customer - клиент мастерской, владелец одного или нескольких автомобилей.
// uuid - внешний адрес записи, id - внутренний числовой ключ для связей.
// Эти два пространства идентификаторов никогда не смешиваются.
type Customer struct {
	ID           int64         `json:"id"`
	UUID         string        `json:"uuid"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	AddressLine1 string        `json:"addressLine1"`
	AddressLine2 string        `json:"addressLine2,omitempty"`
	City         string        `json:"city"`
	County       string        `json:"county"`
	PostalCode   string        `json:"postalCode"`
	Country      string        `json:"country"`
	DateOfBirth  string        `json:"dateOfBirth,omitempty"`
	Phone        string        `json:"phone"`
	Cars         []CustomerCar `json:"customerCars,omitempty"`
	CreatedAt    int64         `json:"createdAt"`
	UpdatedAt    int64         `json:"updatedAt"`
}

// CustomerCar - автомобиль клиента. Принадлежит ровно одному клиенту.
type CustomerCar struct {
	ID                 int64     `json:"id"`
	UUID               string    `json:"uuid"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	Year               int       `json:"year"`
	Color              string    `json:"color"`
	RegistrationNumber string    `json:"registrationNumber"`
	VIN                string    `json:"vin"`
	Customer           *Customer `json:"customer,omitempty"`
	CreatedAt          int64     `json:"createdAt"`
	UpdatedAt          int64     `json:"updatedAt"`
}

// CustomerDTO - payload создания и обновления клиента.
type CustomerDTO struct {
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

// Validate проверяет поля формы клиента до сетевого вызова.
func (d *CustomerDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	errs.minLen("name", d.Name, 3)
	errs.required("email", d.Email)
	errs.email("email", d.Email)
	errs.required("phone", d.Phone)
	return errs.err()
}

// CustomerCarDTO - payload создания и обновления автомобиля клиента.
// customerUuid связывает машину с владельцем.
type CustomerCarDTO struct {
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	Color              string `json:"color"`
	RegistrationNumber string `json:"registrationNumber"`
	VIN                string `json:"vin"`
	CustomerUUID       string `json:"customerUuid"`
}

// Validate проверяет поля формы автомобиля.
func (d *CustomerCarDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("make", d.Make)
	errs.required("model", d.Model)
	errs.required("registrationNumber", d.RegistrationNumber)
	errs.required("customerUuid", d.CustomerUUID)
	if d.Year != 0 && (d.Year < 1900 || d.Year > 2100) {
		errs["year"] = "must be a valid year"
	}
	return errs.err()
}
