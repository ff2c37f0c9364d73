package domain

// Role - роль пользователя. Права привязываются к роли через RolePermission.
type Role struct {
	ID          int64        `json:"id"`
	UUID        string       `json:"uuid"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions,omitempty"`
	CreatedAt   int64        `json:"createdAt"`
	UpdatedAt   int64        `json:"updatedAt"`
}

// RoleDTO - payload создания и обновления роли.
type RoleDTO struct {
	Name string `json:"name"`
}

// Validate проверяет поля формы роли.
func (d *RoleDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("name", d.Name)
	return errs.err()
}

// RolePermission - связка роль-право.
// Связь адресуется числовыми id, а не uuid: endpoint'ы линковки работают
// во внутреннем пространстве идентификаторов.
type RolePermission struct {
	ID           int64 `json:"id"`
	RoleID       int64 `json:"roleId"`
	PermissionID int64 `json:"permissionId"`
}

// Validate проверяет ссылки связки.
func (rp *RolePermission) Validate() error {
	errs := fieldErrors{}
	if rp.RoleID <= 0 {
		errs["roleId"] = "must reference an existing role"
	}
	if rp.PermissionID <= 0 {
		errs["permissionId"] = "must reference an existing permission"
	}
	return errs.err()
}
