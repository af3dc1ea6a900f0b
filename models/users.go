package models

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

// AdminUser is the single staff account. The password hash is computed at
// startup from configuration and never leaves the process.
type AdminUser struct {
	Username     string
	PasswordHash []byte
	Role         string
}

func NewAdminUser(username, password string) (AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AdminUser{}, fmt.Errorf("hash admin password: %w", err)
	}
	return AdminUser{Username: username, PasswordHash: hash, Role: RoleAdmin}, nil
}
