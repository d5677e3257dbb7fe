package models

import "time"

// Keyboard — плоская модель клавиатуры каталога, используемая в HTTP API.
//
// Nullable-поля (description, switches, keycaps, imageUrl) — указатели,
// чтобы в JSON корректно отдавался null, как в исходном контракте каталога.
//
// Поля:
//   - ID: уникальный идентификатор (autoincrement)
//   - Name/Brand/Layout: обязательные характеристики
//   - Price: цена, строго > 0
//   - Wireless/RGB: фичи клавиатуры
//   - InStock/StockCount: наличие на складе
//   - UpdatedAt/CreatedAt: серверные таймстемпы
type Keyboard struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Brand       string    `json:"brand"`
	Layout      string    `json:"layout"`
	Switches    *string   `json:"switches"`
	Keycaps     *string   `json:"keycaps"`
	Wireless    bool      `json:"wireless"`
	RGB         bool      `json:"rgb"`
	ImageURL    *string   `json:"imageUrl"`
	InStock     bool      `json:"inStock"`
	StockCount  int       `json:"stockCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// KeyboardInput — входные данные создания/обновления клавиатуры.
//
// Все поля — указатели, чтобы различать "поле не передано" и
// "поле передано пустым/нулевым" (partial update на PUT).
// Дефолты (wireless=false, rgb=false, inStock=true, stockCount=0)
// проставляет сервисный слой при создании.
type KeyboardInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Layout      *string  `json:"layout,omitempty"`
	Switches    *string  `json:"switches,omitempty"`
	Keycaps     *string  `json:"keycaps,omitempty"`
	Wireless    *bool    `json:"wireless,omitempty"`
	RGB         *bool    `json:"rgb,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	StockCount  *int     `json:"stockCount,omitempty"`
}
