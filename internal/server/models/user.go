// Серверная модель пользователя
package models

import "time"

// User — запись пользователя в таблице users.
//
// PasswordHash никогда не сериализуется в ответы (json:"-").
// Email уникален на уровне БД (unique index) — это единственный
// механизм защиты от гонки двух одновременных регистраций.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserPublic — публичная проекция пользователя для HTTP-ответов.
//
// Содержит только id, email и таймстемпы. Хэш пароля сюда
// не попадает ни при каких условиях.
type UserPublic struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public возвращает публичную проекцию пользователя.
func (u *User) Public() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
