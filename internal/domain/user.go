package domain

// User - учётная запись администратора системы.
// Пользователь ссылается ровно на одну роль; набор прав сессии - это
// объединение прав этой роли.
type User struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      *Role  `json:"role"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// UserAddDTO - payload создания пользователя. Пароль задаётся только здесь.
type UserAddDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleUUID string `json:"roleUuid"`
}

// Validate проверяет поля формы создания пользователя.
func (d *UserAddDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	errs.required("email", d.Email)
	errs.email("email", d.Email)
	errs.required("password", d.Password)
	errs.minLen("password", d.Password, 6)
	errs.required("roleUuid", d.RoleUUID)
	return errs.err()
}

// UserUpdateDTO - payload обновления пользователя, без пароля.
// Смена пароля идёт отдельной операцией ChangePassword.
type UserUpdateDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleUUID string `json:"roleUuid"`
}

// Validate проверяет поля формы обновления пользователя.
func (d *UserUpdateDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	errs.required("email", d.Email)
	errs.email("email", d.Email)
	errs.required("roleUuid", d.RoleUUID)
	return errs.err()
}

// ChangePasswordDTO - payload смены пароля пользователя.
type ChangePasswordDTO struct {
	NewPassword string `json:"newPassword"`
}

// Validate проверяет новый пароль.
func (d *ChangePasswordDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("newPassword", d.NewPassword)
	errs.minLen("newPassword", d.NewPassword, 6)
	return errs.err()
}
