// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// keyboardColumns — список колонок в порядке сканирования.
const keyboardColumns = `id, name, description, price, brand, layout, switches, keycaps,
	wireless, rgb, image_url, in_stock, stock_count, created_at, updated_at`

// KeyboardsRepository отвечает за хранение каталога клавиатур (PostgreSQL).
type KeyboardsRepository struct {
	db *sql.DB
}

// NewKeyboardsRepository создаёт новый KeyboardsRepository.
func NewKeyboardsRepository(db *sql.DB) *KeyboardsRepository {
	return &KeyboardsRepository{db: db}
}

func scanKeyboard(row interface{ Scan(dest ...any) error }) (*models.Keyboard, error) {
	var k models.Keyboard
	err := row.Scan(
		&k.ID, &k.Name, &k.Description, &k.Price, &k.Brand, &k.Layout,
		&k.Switches, &k.Keycaps, &k.Wireless, &k.RGB, &k.ImageURL,
		&k.InStock, &k.StockCount, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// List возвращает все клавиатуры каталога, новые — первыми.
func (r *KeyboardsRepository) List(ctx context.Context) ([]models.Keyboard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+keyboardColumns+`
		   FROM keyboards
		  ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	keyboards := make([]models.Keyboard, 0)
	for rows.Next() {
		k, err := scanKeyboard(rows)
		if err != nil {
			return nil, serr.ErrInternal
		}
		keyboards = append(keyboards, *k)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return keyboards, nil
}

// Get возвращает клавиатуру по id.
//
// Ошибки:
//   - ErrNotFound если записи нет или ErrInternal при ошибке БД
func (r *KeyboardsRepository) Get(ctx context.Context, id int64) (*models.Keyboard, error) {
	k, err := scanKeyboard(r.db.QueryRowContext(ctx,
		`SELECT `+keyboardColumns+`
		   FROM keyboards
		  WHERE id=$1`,
		id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}
	return k, nil
}

// Create сохраняет новую клавиатуру и возвращает полную запись
// с проставленными id и таймстемпами.
func (r *KeyboardsRepository) Create(ctx context.Context, k *models.Keyboard) (*models.Keyboard, error) {
	created, err := scanKeyboard(r.db.QueryRowContext(ctx,
		`INSERT INTO keyboards
			(name, description, price, brand, layout, switches, keycaps,
			 wireless, rgb, image_url, in_stock, stock_count)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 RETURNING `+keyboardColumns,
		k.Name, k.Description, k.Price, k.Brand, k.Layout, k.Switches, k.Keycaps,
		k.Wireless, k.RGB, k.ImageURL, k.InStock, k.StockCount,
	))
	if err != nil {
		return nil, serr.ErrInternal
	}
	return created, nil
}

// Update выполняет partial update: обновляются только поля,
// которые заданы (не nil) во входной структуре.
//
// Ошибки:
//   - ErrInvalidInput если ни одно поле не задано
//   - ErrNotFound если записи нет
func (r *KeyboardsRepository) Update(ctx context.Context, id int64, in models.KeyboardInput) (*models.Keyboard, error) {
	set := make([]string, 0, 12)
	args := make([]any, 0, 13)

	add := func(column string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Price != nil {
		add("price", *in.Price)
	}
	if in.Brand != nil {
		add("brand", *in.Brand)
	}
	if in.Layout != nil {
		add("layout", *in.Layout)
	}
	if in.Switches != nil {
		add("switches", *in.Switches)
	}
	if in.Keycaps != nil {
		add("keycaps", *in.Keycaps)
	}
	if in.Wireless != nil {
		add("wireless", *in.Wireless)
	}
	if in.RGB != nil {
		add("rgb", *in.RGB)
	}
	if in.ImageURL != nil {
		add("image_url", *in.ImageURL)
	}
	if in.InStock != nil {
		add("in_stock", *in.InStock)
	}
	if in.StockCount != nil {
		add("stock_count", *in.StockCount)
	}

	if len(set) == 0 {
		return nil, serr.ErrInvalidInput
	}

	set = append(set, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE keyboards SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), keyboardColumns,
	)

	k, err := scanKeyboard(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}
	return k, nil
}

// Delete удаляет клавиатуру по id.
//
// Ошибки:
//   - ErrNotFound если записи не было
func (r *KeyboardsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM keyboards WHERE id=$1`, id)
	if err != nil {
		return serr.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if affected == 0 {
		return serr.ErrNotFound
	}
	return nil
}
