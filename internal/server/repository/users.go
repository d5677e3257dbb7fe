package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create вставляет нового пользователя.
//
// Уникальность email обеспечивает unique index: при гонке двух
// одновременных регистраций проигравший получает ErrAlreadyExists,
// а не падение — сервисный слой складывает это в общий ответ.
func (r *UsersRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	u := models.User{
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1,$2)
		 RETURNING id, created_at, updated_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return nil, serr.ErrAlreadyExists
			}
		}
		return nil, serr.ErrInternal
	}

	return &u, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		   FROM users
		  WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	return &u, nil
}

func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		   FROM users
		  WHERE id=$1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	return &u, nil
}
