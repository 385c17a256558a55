package models

// RoleFlags are the specialist roles staff can hold. They live on the
// user aggregate and are initialized atomically with user creation.
type RoleFlags struct {
	IsMechanic  bool `json:"is_mechanic"`
	IsBilling   bool `json:"is_billing"`
	IsEcommerce bool `json:"is_ecommerce"`
}

type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	Roles       RoleFlags `json:"roles"`
}

// IsSpecialist reports whether the user holds any workshop role.
func (u User) IsSpecialist() bool {
	return u.Roles.IsMechanic || u.Roles.IsBilling || u.Roles.IsEcommerce
}

// IsStaffOrSpecialist gates the admin booking and order endpoints.
func (u User) IsStaffOrSpecialist() bool {
	return u.IsSuperuser || u.IsStaff || u.IsSpecialist()
}

// IsPrivileged gates full service-history visibility.
func (u User) IsPrivileged() bool {
	return u.IsSuperuser || u.IsStaff || u.Roles.IsMechanic || u.Roles.IsBilling
}
