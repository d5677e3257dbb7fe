package tests

import (
	"testing"

	crypt "github.com/IvanChernomyrdin/ergotype/internal/server/crypto"
)

// Хэширование и успешная проверка
func TestHashAndVerifyPassword_OK(t *testing.T) {
	password := "Super-secret1"

	hash, err := crypt.HashPassword(password, crypt.MinBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !crypt.VerifyPassword(password, hash) {
		t.Fatal("expected password to be valid")
	}
}

// Неверный пароль
func TestVerifyPassword_InvalidPassword(t *testing.T) {
	hash, err := crypt.HashPassword("Correct-pass1", crypt.MinBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if crypt.VerifyPassword("Wrong-pass1", hash) {
		t.Fatal("expected password to be invalid")
	}
}

// Пустой пароль
func TestHashPassword_EmptyPassword(t *testing.T) {
	_, err := crypt.HashPassword("", crypt.MinBcryptCost)
	if err == nil {
		t.Fatal("expected error for empty password")
	}
}

// Слишком дешёвый cost
func TestHashPassword_CostBelowMinimum(t *testing.T) {
	_, err := crypt.HashPassword("Super-secret1", crypt.MinBcryptCost-1)
	if err == nil {
		t.Fatal("expected error for cost below minimum")
	}
}

// Битый формат хэша — это просто "не совпало", без паники
func TestVerifyPassword_InvalidFormat(t *testing.T) {
	if crypt.VerifyPassword("password", "not-a-valid-hash") {
		t.Fatal("expected invalid hash format to fail verification")
	}
}

// Проверка: соль разная (хэши разные)
func TestHashPassword_DifferentSalt(t *testing.T) {
	password := "Same-password1"

	h1, _ := crypt.HashPassword(password, crypt.MinBcryptCost)
	h2, _ := crypt.HashPassword(password, crypt.MinBcryptCost)

	if h1 == h2 {
		t.Fatal("expected different hashes for same password")
	}
}
