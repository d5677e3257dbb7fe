// Хэширование паролей
package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost — минимально допустимый work factor.
// Ниже 10 хэш считается слишком дешёвым для перебора.
const MinBcryptCost = 10

// HashPassword возвращает bcrypt-хэш пароля с заданным cost.
//
// Соль генерируется библиотекой и хранится внутри самого хэша.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	if cost < MinBcryptCost {
		return "", fmt.Errorf("bcrypt cost %d is below minimum %d", cost, MinBcryptCost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword проверяет пароль против сохранённого bcrypt-хэша.
//
// Сравнение внутри bcrypt константное по времени.
// Битый/чужой формат хэша — это просто "не совпало" (false),
// а не ошибка: верификация никогда не паникует и не возвращает error.
func VerifyPassword(password, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
