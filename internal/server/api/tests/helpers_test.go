package tests

import (
	"testing"

	crypt "github.com/IvanChernomyrdin/ergotype/internal/server/crypto"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := crypt.HashPassword(password, crypt.MinBcryptCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}
