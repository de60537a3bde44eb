package domain

import "time"

// Role names. Roles are seeded once and never change afterwards.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
	RoleVendor   = "VENDOR"
)

type Role struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleRef is the role summary carried by a PublicAccount.
type RoleRef struct {
	ID   int64
	Name string
}
