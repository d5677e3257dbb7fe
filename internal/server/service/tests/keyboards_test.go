package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

func newKeyboardsService(t *testing.T) (*service.KeyboardsService, *mocks.MockKeyboardsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockKeyboardsRepo(ctrl)

	return service.NewKeyboardsService(repo), repo
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

// Создание с минимальным набором полей: дефолты проставляются сервисом
func TestKeyboardsService_Create_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, repo := newKeyboardsService(t)

	in := models.KeyboardInput{
		Name:   strPtr("ErgoDox EZ"),
		Price:  floatPtr(354),
		Brand:  strPtr("ZSA"),
		Layout: strPtr("split"),
	}

	repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, k *models.Keyboard) (*models.Keyboard, error) {
			require.Equal(t, "ErgoDox EZ", k.Name)
			require.False(t, k.Wireless)
			require.False(t, k.RGB)
			require.True(t, k.InStock)
			require.Equal(t, 0, k.StockCount)
			k.ID = 1
			return k, nil
		})

	created, err := svc.Create(ctx, in)

	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
}

// Создание без обязательных полей
func TestKeyboardsService_Create_MissingRequired(t *testing.T) {
	ctx := context.Background()
	svc, _ := newKeyboardsService(t)

	_, err := svc.Create(ctx, models.KeyboardInput{})

	var fe serr.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, service.MsgNameRequired, fe["name"])
	require.Equal(t, service.MsgPricePositive, fe["price"])
	require.Equal(t, service.MsgBrandRequired, fe["brand"])
	require.Equal(t, service.MsgLayoutRequired, fe["layout"])
}

// Невалидные значения: цена, склад, url картинки
func TestKeyboardsService_Create_InvalidValues(t *testing.T) {
	ctx := context.Background()
	svc, _ := newKeyboardsService(t)

	in := models.KeyboardInput{
		Name:       strPtr("Board"),
		Price:      floatPtr(-5),
		Brand:      strPtr("Acme"),
		Layout:     strPtr("tkl"),
		StockCount: intPtr(-1),
		ImageURL:   strPtr("not a url"),
	}

	_, err := svc.Create(ctx, in)

	var fe serr.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, service.MsgPricePositive, fe["price"])
	require.Equal(t, service.MsgStockNegative, fe["stockCount"])
	require.Equal(t, service.MsgInvalidImageURL, fe["imageUrl"])
}

// Partial update: проверяются только переданные поля
func TestKeyboardsService_Update_Partial(t *testing.T) {
	ctx := context.Background()
	svc, repo := newKeyboardsService(t)

	in := models.KeyboardInput{Price: floatPtr(399)}

	repo.EXPECT().
		Update(ctx, int64(2), in).
		Return(&models.Keyboard{ID: 2, Price: 399}, nil)

	updated, err := svc.Update(ctx, 2, in)

	require.NoError(t, err)
	require.Equal(t, float64(399), updated.Price)
}

// Partial update с невалидным значением переданного поля
func TestKeyboardsService_Update_InvalidField(t *testing.T) {
	ctx := context.Background()
	svc, _ := newKeyboardsService(t)

	_, err := svc.Update(ctx, 2, models.KeyboardInput{Name: strPtr("")})

	var fe serr.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, service.MsgNameRequired, fe["name"])
}

// Удаление несуществующей записи пробрасывает ErrNotFound
func TestKeyboardsService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := newKeyboardsService(t)

	repo.EXPECT().
		Delete(ctx, int64(99)).
		Return(serr.ErrNotFound)

	err := svc.Delete(ctx, 99)

	require.ErrorIs(t, err, serr.ErrNotFound)
}
