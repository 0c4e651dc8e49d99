// Package users manages user accounts.
package users

import "time"

// User is an account. Password holds a bcrypt hash.
type User struct {
	ID            string     `json:"_id" bson:"_id"`
	Username      string     `json:"username,omitempty" bson:"username,omitempty"`
	DeviceID      string     `json:"deviceId,omitempty" bson:"deviceId,omitempty"`
	Password      string     `json:"password,omitempty" bson:"password,omitempty"`
	Email         string     `json:"email,omitempty" bson:"email,omitempty"`
	Admin         bool       `json:"admin" bson:"admin"`
	CreatedOnDate time.Time  `json:"createdOnDate" bson:"createdOnDate"`
	UpdatedOnDate *time.Time `json:"updatedOnDate,omitempty" bson:"updatedOnDate,omitempty"`
}

// CreateUserRequest carries the signup fields, all optional
type CreateUserRequest struct {
	Username string `json:"username"`
	DeviceID string `json:"deviceId"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Public is the user as returned by the API, without the password hash
type Public struct {
	ID            string     `json:"_id"`
	Username      string     `json:"username,omitempty"`
	DeviceID      string     `json:"deviceId,omitempty"`
	Email         string     `json:"email,omitempty"`
	Admin         bool       `json:"admin"`
	CreatedOnDate time.Time  `json:"createdOnDate"`
	UpdatedOnDate *time.Time `json:"updatedOnDate,omitempty"`
}

// Public strips the password hash
func (u User) Public() Public {
	return Public{
		ID:            u.ID,
		Username:      u.Username,
		DeviceID:      u.DeviceID,
		Email:         u.Email,
		Admin:         u.Admin,
		CreatedOnDate: u.CreatedOnDate,
		UpdatedOnDate: u.UpdatedOnDate,
	}
}
