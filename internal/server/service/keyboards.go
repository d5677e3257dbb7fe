package service

import (
	"context"
	"net/url"

	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// Сообщения валидации каталога — контракт API.
const (
	MsgNameRequired    = "Name is required"
	MsgPricePositive   = "Price must be positive"
	MsgBrandRequired   = "Brand is required"
	MsgLayoutRequired  = "Layout is required"
	MsgStockNegative   = "Stock count must be greater than or equal to 0"
	MsgInvalidImageURL = "Invalid url"
)

// KeyboardsService реализует бизнес-логику каталога клавиатур.
type KeyboardsService struct {
	keyboards KeyboardsRepo
}

// NewKeyboardsService создаёт KeyboardsService.
func NewKeyboardsService(keyboards KeyboardsRepo) *KeyboardsService {
	return &KeyboardsService{keyboards: keyboards}
}

// List возвращает весь каталог, новые записи первыми.
func (s *KeyboardsService) List(ctx context.Context) ([]models.Keyboard, error) {
	return s.keyboards.List(ctx)
}

// Get возвращает клавиатуру по id (ErrNotFound если её нет).
func (s *KeyboardsService) Get(ctx context.Context, id int64) (*models.Keyboard, error) {
	return s.keyboards.Get(ctx, id)
}

// validateInput проверяет заполненные поля входной структуры.
// requireAll=true — режим создания: обязательные поля должны присутствовать.
func validateInput(in models.KeyboardInput, requireAll bool) serr.FieldErrors {
	fe := serr.FieldErrors{}

	if in.Name != nil && *in.Name == "" || requireAll && in.Name == nil {
		fe["name"] = MsgNameRequired
	}
	if in.Price != nil && *in.Price <= 0 || requireAll && in.Price == nil {
		fe["price"] = MsgPricePositive
	}
	if in.Brand != nil && *in.Brand == "" || requireAll && in.Brand == nil {
		fe["brand"] = MsgBrandRequired
	}
	if in.Layout != nil && *in.Layout == "" || requireAll && in.Layout == nil {
		fe["layout"] = MsgLayoutRequired
	}
	if in.StockCount != nil && *in.StockCount < 0 {
		fe["stockCount"] = MsgStockNegative
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		if u, err := url.ParseRequestURI(*in.ImageURL); err != nil || u.Scheme == "" || u.Host == "" {
			fe["imageUrl"] = MsgInvalidImageURL
		}
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Create добавляет клавиатуру в каталог.
//
// Дефолты как в исходном контракте: wireless=false, rgb=false,
// inStock=true, stockCount=0.
func (s *KeyboardsService) Create(ctx context.Context, in models.KeyboardInput) (*models.Keyboard, error) {
	if fe := validateInput(in, true); fe != nil {
		return nil, fe
	}

	k := models.Keyboard{
		Name:        *in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Brand:       *in.Brand,
		Layout:      *in.Layout,
		Switches:    in.Switches,
		Keycaps:     in.Keycaps,
		ImageURL:    in.ImageURL,
		InStock:     true,
	}
	if in.Wireless != nil {
		k.Wireless = *in.Wireless
	}
	if in.RGB != nil {
		k.RGB = *in.RGB
	}
	if in.InStock != nil {
		k.InStock = *in.InStock
	}
	if in.StockCount != nil {
		k.StockCount = *in.StockCount
	}

	return s.keyboards.Create(ctx, &k)
}

// Update выполняет partial update клавиатуры.
//
// Проверяются только переданные поля; пустой patch — ErrInvalidInput.
func (s *KeyboardsService) Update(ctx context.Context, id int64, in models.KeyboardInput) (*models.Keyboard, error) {
	if fe := validateInput(in, false); fe != nil {
		return nil, fe
	}
	return s.keyboards.Update(ctx, id, in)
}

// Delete удаляет клавиатуру (ErrNotFound если её не было).
func (s *KeyboardsService) Delete(ctx context.Context, id int64) error {
	return s.keyboards.Delete(ctx, id)
}
