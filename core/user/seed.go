package user

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed returns the default account set used to initialize an empty database.
// All seed accounts share the demo password "123456".
func Seed() []User {
	createdAt := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return []User{
		{
			ID:           "1",
			Name:         "Jose Bayona",
			Email:        "alumno@colegio.com",
			Type:         TypeStudent,
			PasswordHash: mustHash("123456"),
			CreatedAt:    createdAt,
		},
		{
			ID:           "2",
			Name:         "María García",
			Email:        "profesor@colegio.com",
			Type:         TypeTeacher,
			PasswordHash: mustHash("123456"),
			CreatedAt:    createdAt,
		},
		{
			ID:           "3",
			Name:         "Carlos Pérez",
			Email:        "admin@colegio.com",
			Type:         TypeAdmin,
			PasswordHash: mustHash("123456"),
			CreatedAt:    createdAt,
		},
	}
}

func mustHash(pwd string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("user: hashing seed password: %v", err))
	}
	return hash
}
