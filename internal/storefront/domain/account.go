package domain

import "time"

// Account is a registered user. PasswordHash never leaves the service layer;
// use Sanitize to build anything that is returned to a caller.
type Account struct {
	ID           int64
	GUID         string
	Email        string
	Name         string
	PasswordHash string // bcrypt digest
	Phone        *string
	RoleID       int64 // Foreign key to roles table
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicAccount is the allow-listed view of an Account.
type PublicAccount struct {
	ID        int64
	GUID      string
	Email     string
	Name      string
	Phone     *string
	Role      RoleRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sanitize projects an Account onto the fields that may be exposed.
// Fields are copied explicitly so new Account fields stay private by default.
func Sanitize(a Account) PublicAccount {
	var phone *string
	if a.Phone != nil {
		p := *a.Phone
		phone = &p
	}
	return PublicAccount{
		ID:        a.ID,
		GUID:      a.GUID,
		Email:     a.Email,
		Name:      a.Name,
		Phone:     phone,
		Role:      RoleRef{ID: a.RoleID, Name: a.Role.Name},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// SanitizeAll applies Sanitize to every account.
func SanitizeAll(accounts []Account) []PublicAccount {
	out := make([]PublicAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, Sanitize(a))
	}
	return out
}
