package devserver

import (
	"fmt"

	"github.com/damrufest/judgeboard/comp"
	"golang.org/x/crypto/bcrypt"
)

// SeedAccount is a demo login for local development.
type SeedAccount struct {
	Name     string
	Email    string
	Role     comp.Role
	Password string
}

// DefaultSeedAccounts cover every role the client gates on.
var DefaultSeedAccounts = []SeedAccount{
	{Name: "Paula Producer", Email: "producer@example.com", Role: comp.RoleProducer, Password: "producer123"},
	{Name: "Dana Director", Email: "director@example.com", Role: comp.RoleDirector, Password: "director123"},
	{Name: "Alex Admin", Email: "admin@example.com", Role: comp.RoleAdmin, Password: "admin123"},
	{Name: "Jana Judge", Email: "judge@example.com", Role: comp.RoleJudge, Password: "judge123"},
	{Name: "Omar Judge", Email: "judge2@example.com", Role: comp.RoleJudge, Password: "judge123"},
}

// Seed loads accounts into the store, hashing passwords with bcrypt the
// way the real backend stores them.
func Seed(store *Store, accounts []SeedAccount) error {
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.MinCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", a.Email, err)
		}
		store.AddAccount(a.Name, a.Email, a.Role, hash)
	}
	return nil
}
