// Package service содержит бизнес-логику приложения (ErgoType).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/IvanChernomyrdin/ergotype/internal/server/config"
	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users     UsersRepo
	Keyboards KeyboardsRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth      *AuthService
	Keyboards *KeyboardsService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хэширования пароля и JWT).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.Users, cfg),
		Keyboards: NewKeyboardsService(repos.Keyboards),
	}
}

// UsersRepo — репозиторий пользователей (нужен для signup/login/me).
type UsersRepo interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// KeyboardsRepo — репозиторий каталога клавиатур (CRUD).
type KeyboardsRepo interface {
	List(ctx context.Context) ([]models.Keyboard, error)
	Get(ctx context.Context, id int64) (*models.Keyboard, error)
	Create(ctx context.Context, k *models.Keyboard) (*models.Keyboard, error)
	Update(ctx context.Context, id int64, in models.KeyboardInput) (*models.Keyboard, error)
	Delete(ctx context.Context, id int64) error
}
