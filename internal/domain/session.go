package domain

import "time"

// Role of an authenticated principal
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Capability is a single permission checked by the API
type Capability string

const (
	CapManageCatalog Capability = "manage_catalog"
	CapManageOrders  Capability = "manage_orders"
	CapViewCustomers Capability = "view_customers"
	CapCheckout      Capability = "checkout"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin:    {CapManageCatalog, CapManageOrders, CapViewCustomers, CapCheckout},
	RoleCustomer: {CapCheckout},
}

// Session is the value handed out on login
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Can reports whether the session's role grants c.
func (s Session) Can(c Capability) bool {
	for _, have := range roleCapabilities[s.Role] {
		if have == c {
			return true
		}
	}
	return false
}
