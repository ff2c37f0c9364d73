package domain

// Permission - именованное право. Наличие имени права в наборе сессии
// открывает экран или действие, сами проверки на клиенте - только UX,
// настоящая авторизация выполняется сервером на каждом запросе.
type Permission struct {
	ID          int64  `json:"id"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// PermissionDTO - payload создания и обновления права.
type PermissionDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate проверяет поля формы права.
func (d *PermissionDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	return errs.err()
}
