// Package domain holds the back-office records the admin screens manage:
// categories, customers, per-page SEO entries and panel users.
package domain

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Count       int       `json:"count"`
	Image       string    `json:"image"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Count       *int    `json:"count,omitempty"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
	Slug        *string `json:"slug,omitempty"`
}

func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Count != nil {
		c.Count = *p.Count
	}
	if p.Image != nil {
		c.Image = *p.Image
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
}

type Customer struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	Orders      int        `json:"orders"`
	TotalSpent  float64    `json:"totalSpent"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastOrderAt *time.Time `json:"lastOrderAt,omitempty"`
}

type CustomerPatch struct {
	Email       *string    `json:"email,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	City        *string    `json:"city,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Orders      *int       `json:"orders,omitempty"`
	TotalSpent  *float64   `json:"totalSpent,omitempty"`
	LastOrderAt *time.Time `json:"lastOrderAt,omitempty"`
}

func (p CustomerPatch) Apply(c *Customer) {
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.Orders != nil {
		c.Orders = *p.Orders
	}
	if p.TotalSpent != nil {
		c.TotalSpent = *p.TotalSpent
	}
	if p.LastOrderAt != nil {
		c.LastOrderAt = p.LastOrderAt
	}
}

// SEOEntry is the metadata set for one storefront page. Entries are keyed by
// page, not by id: writing to a page that has no entry creates one.
type SEOEntry struct {
	ID          string    `json:"id"`
	Page        string    `json:"page"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Keywords    string    `json:"keywords"`
	OGImage     string    `json:"ogImage,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SEOPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Keywords    *string `json:"keywords,omitempty"`
	OGImage     *string `json:"ogImage,omitempty"`
}

func (p SEOPatch) Apply(e *SEOEntry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Keywords != nil {
		e.Keywords = *p.Keywords
	}
	if p.OGImage != nil {
		e.OGImage = *p.OGImage
	}
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleCustomer
}

// CanSignIn reports whether the role is allowed into the admin panel.
func (r Role) CanSignIn() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Password  string    `json:"password,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserPatch struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (p UserPatch) Apply(u *User, now time.Time) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	u.UpdatedAt = now
}

// Session is the signed-in panel account persisted between visits. Staff are
// granted the admin role inside the panel.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}
