package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/viteshop/backend/pkg/sanitizer"
	"github.com/viteshop/backend/pkg/validator"
)

// GetProfile loads a user by ID.
func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.storage.GetUserByID(ctx, userID)
}

// UpdateProfile applies a partial profile mutation. Nil fields are left
// untouched.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*User, error) {
	if update.Name != nil {
		name := sanitizer.NormalizeWhitespace(*update.Name)
		if err := validator.Apply(validator.Required("name", name)); err != nil {
			return nil, err
		}
		update.Name = &name
	}
	if update.Phone != nil {
		phone := sanitizer.NormalizePhone(*update.Phone)
		if err := validator.Apply(validator.MinLen("phone", phone, MinPhoneLength)); err != nil {
			return nil, err
		}
		update.Phone = &phone
	}

	return s.storage.UpdateProfile(ctx, userID, update)
}

// AddressParams are the caller-supplied fields of an address.
type AddressParams struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

func (p AddressParams) validate() error {
	return validator.Apply(
		validator.Required("street", p.Street),
		validator.Required("city", p.City),
		validator.Required("country", p.Country),
	)
}

// AddAddress appends a new address. The first address a user adds becomes
// the default and primary one.
func (s *Service) AddAddress(ctx context.Context, userID string, params AddressParams) (*User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr := Address{
		ID:      uuid.NewString(),
		Street:  params.Street,
		City:    params.City,
		State:   params.State,
		ZipCode: params.ZipCode,
		Country: params.Country,
	}

	primaryID := user.PrimaryAddressID
	if len(user.Addresses) == 0 {
		addr.IsDefault = true
		primaryID = &addr.ID
	}

	addresses := append(user.Addresses, addr)

	return s.storage.ReplaceAddresses(ctx, userID, addresses, primaryID)
}

// UpdateAddress rewrites the fields of an existing address, keeping its ID
// and default flag.
func (s *Service) UpdateAddress(ctx context.Context, userID, addressID string, params AddressParams) (*User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr := user.AddressByID(addressID)
	if addr == nil {
		return nil, ErrAddressNotFound
	}

	addr.Street = params.Street
	addr.City = params.City
	addr.State = params.State
	addr.ZipCode = params.ZipCode
	addr.Country = params.Country

	return s.storage.ReplaceAddresses(ctx, userID, user.Addresses, user.PrimaryAddressID)
}

// DeleteAddress removes an address. Deleting the primary address promotes
// the first remaining address to default/primary; deleting the last one
// clears the primary reference.
func (s *Service) DeleteAddress(ctx context.Context, userID, addressID string) (*User, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range user.Addresses {
		if user.Addresses[i].ID == addressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrAddressNotFound
	}

	wasPrimary := user.Addresses[idx].IsDefault ||
		(user.PrimaryAddressID != nil && *user.PrimaryAddressID == addressID)

	addresses := append(user.Addresses[:idx:idx], user.Addresses[idx+1:]...)
	primaryID := user.PrimaryAddressID

	if wasPrimary {
		if len(addresses) > 0 {
			addresses[0].IsDefault = true
			primaryID = &addresses[0].ID
		} else {
			primaryID = nil
		}
	}

	return s.storage.ReplaceAddresses(ctx, userID, addresses, primaryID)
}

// SetPrimaryAddress marks one address as default/primary. The default flag
// is cleared on every other address in the same write, so the
// at-most-one-default invariant cannot be violated by interleaving.
func (s *Service) SetPrimaryAddress(ctx context.Context, userID, addressID string) (*User, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.AddressByID(addressID) == nil {
		return nil, ErrAddressNotFound
	}

	for i := range user.Addresses {
		user.Addresses[i].IsDefault = user.Addresses[i].ID == addressID
	}

	id := addressID
	updated, err := s.storage.ReplaceAddresses(ctx, userID, user.Addresses, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to set primary address: %w", err)
	}
	return updated, nil
}
