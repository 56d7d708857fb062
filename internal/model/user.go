package model

import "time"

// Principal is the opaque caller identity handed over by the identity provider.
type Principal string

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type UserProfile struct {
	Principal Principal      `db:"principal" json:"principal"`
	Name      string         `db:"name" json:"name"`
	Email     string         `db:"email" json:"email"`
	Phone     Option[string] `db:"phone" json:"phone"`
	Role      Role           `db:"role" json:"role"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
