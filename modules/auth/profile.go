package auth

import (
	"net/http"

	"github.com/viteshop/backend/pkg/auth"
)

type updateProfileRequest struct {
	UserID       string  `json:"-" path:"userId"`
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profileImage"`
}

func (m *Module) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := bindJSON(r, &req); err != nil {
		m.respondError(w, r, err, "UpdateProfileError", "")
		return
	}
	if err := bindPath(r, &req); err != nil {
		m.respondError(w, r, err, "UpdateProfileError", "")
		return
	}
	if !m.guardIdentity(w, r, req.UserID) {
		return
	}

	user, err := m.service.UpdateProfile(r.Context(), req.UserID, auth.ProfileUpdate{
		Name:         req.Name,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		m.respondError(w, r, err, "UpdateProfileError", "")
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Profile updated successfully",
		User:    user.Public(),
	})
}

type addressRequest struct {
	UserID    string `json:"-" path:"userId"`
	AddressID string `json:"-" path:"addressId"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

func (req addressRequest) params() auth.AddressParams {
	return auth.AddressParams{
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Country: req.Country,
	}
}

func (m *Module) handleAddAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := bindJSON(r, &req); err != nil {
		m.respondError(w, r, err, "AddAddressError", "")
		return
	}
	if err := bindPath(r, &req); err != nil {
		m.respondError(w, r, err, "AddAddressError", "")
		return
	}
	if !m.guardIdentity(w, r, req.UserID) {
		return
	}

	user, err := m.service.AddAddress(r.Context(), req.UserID, req.params())
	if err != nil {
		m.respondError(w, r, err, "AddAddressError", "")
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Address added successfully",
		User:    user.Public(),
	})
}

func (m *Module) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := bindJSON(r, &req); err != nil {
		m.respondError(w, r, err, "UpdateAddressError", "")
		return
	}
	if err := bindPath(r, &req); err != nil {
		m.respondError(w, r, err, "UpdateAddressError", "")
		return
	}
	if !m.guardIdentity(w, r, req.UserID) {
		return
	}

	user, err := m.service.UpdateAddress(r.Context(), req.UserID, req.AddressID, req.params())
	if err != nil {
		m.respondError(w, r, err, "UpdateAddressError", "")
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Address updated successfully",
		User:    user.Public(),
	})
}

type addressPathRequest struct {
	UserID    string `path:"userId"`
	AddressID string `path:"addressId"`
}

func (m *Module) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	var req addressPathRequest
	if err := bindPath(r, &req); err != nil {
		m.respondError(w, r, err, "DeleteAddressError", "")
		return
	}
	if !m.guardIdentity(w, r, req.UserID) {
		return
	}

	user, err := m.service.DeleteAddress(r.Context(), req.UserID, req.AddressID)
	if err != nil {
		m.respondError(w, r, err, "DeleteAddressError", "")
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Address deleted successfully",
		User:    user.Public(),
	})
}

func (m *Module) handleSetPrimaryAddress(w http.ResponseWriter, r *http.Request) {
	var req addressPathRequest
	if err := bindPath(r, &req); err != nil {
		m.respondError(w, r, err, "SetPrimaryAddressError", "")
		return
	}
	if !m.guardIdentity(w, r, req.UserID) {
		return
	}

	user, err := m.service.SetPrimaryAddress(r.Context(), req.UserID, req.AddressID)
	if err != nil {
		m.respondError(w, r, err, "SetPrimaryAddressError", "")
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Primary address updated successfully",
		User:    user.Public(),
	})
}
