package auth

import "time"

// User is the identity root. The password hash and reset-token digest never
// leave the domain layer; PublicProfile is the only projection handed to
// transport code.
type User struct {
	ID               string
	Email            string // unique, stored lowercase
	Name             string
	PasswordHash     []byte
	Phone            string
	ProfileImage     *string
	Addresses        []Address
	PrimaryAddressID *string
	ResetTokenDigest *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	LastLoginAt      *time.Time
}

// Address is owned by exactly one user. IDs are opaque strings generated at
// creation time and unique within the owning user.
type Address struct {
	ID        string `json:"id"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// PublicProfile is the client-visible projection of a user. It never
// contains the password hash or reset-token fields.
type PublicProfile struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	ProfileImage     *string    `json:"profileImage,omitempty"`
	Addresses        []Address  `json:"addresses,omitempty"`
	PrimaryAddressID *string    `json:"primaryAddressId,omitempty"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
}

// Public returns the client-visible projection.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		ProfileImage:     u.ProfileImage,
		Addresses:        u.Addresses,
		PrimaryAddressID: u.PrimaryAddressID,
		LastLoginAt:      u.LastLoginAt,
	}
}

// AddressByID returns a pointer into the user's address list, or nil.
func (u *User) AddressByID(id string) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return &u.Addresses[i]
		}
	}
	return nil
}
