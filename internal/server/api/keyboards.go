// HTTP-хендлеры каталога клавиатур
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// keyboardID достаёт id из URL. Нечисловой id — это "нет такой записи".
func keyboardID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListKeyboards возвращает весь каталог (массив, новые первыми).
//
// Ответы:
//   - 200 OK: массив клавиатур;
//   - 500 Internal Server Error.
func (h *Handler) ListKeyboards(w http.ResponseWriter, r *http.Request) {
	keyboards, err := h.Svc.Keyboards.List(r.Context())
	if err != nil {
		h.Log.Logger.Sugar().Error("list keyboards failed")
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	WriteJSON(w, http.StatusOK, keyboards)
}

// GetKeyboard возвращает клавиатуру по id.
//
// Ответы:
//   - 200 OK;
//   - 404 Not Found: записи нет (или id не число);
//   - 500 Internal Server Error.
func (h *Handler) GetKeyboard(w http.ResponseWriter, r *http.Request) {
	id, err := keyboardID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrKeyboardNotFound)
		return
	}

	keyboard, err := h.Svc.Keyboards.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			WriteError(w, http.StatusNotFound, serr.ErrKeyboardNotFound)
			return
		}
		h.Log.Logger.Sugar().Error("get keyboard failed")
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	WriteJSON(w, http.StatusOK, keyboard)
}

// CreateKeyboard добавляет клавиатуру в каталог.
//
// Ответы:
//   - 201 Created: созданная запись;
//   - 400 Bad Request: неверный JSON или ошибки валидации по полям;
//   - 500 Internal Server Error.
func (h *Handler) CreateKeyboard(w http.ResponseWriter, r *http.Request) {
	var in models.KeyboardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	keyboard, err := h.Svc.Keyboards.Create(r.Context(), in)
	if err != nil {
		var fe serr.FieldErrors
		switch {
		case errors.As(err, &fe):
			WriteFieldErrors(w, fe)
		default:
			h.Log.Logger.Sugar().Error("create keyboard failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, keyboard)
}

// UpdateKeyboard выполняет partial update клавиатуры.
//
// Ответы:
//   - 200 OK: обновлённая запись;
//   - 400 Bad Request: неверный JSON, пустой patch или ошибки валидации;
//   - 404 Not Found: записи нет;
//   - 500 Internal Server Error.
func (h *Handler) UpdateKeyboard(w http.ResponseWriter, r *http.Request) {
	id, err := keyboardID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrKeyboardNotFound)
		return
	}

	var in models.KeyboardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	keyboard, err := h.Svc.Keyboards.Update(r.Context(), id, in)
	if err != nil {
		var fe serr.FieldErrors
		switch {
		case errors.As(err, &fe):
			WriteFieldErrors(w, fe)
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrKeyboardNotFound)
		default:
			h.Log.Logger.Sugar().Error("update keyboard failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, keyboard)
}

// DeleteKeyboard удаляет клавиатуру.
//
// Ответы:
//   - 204 No Content;
//   - 404 Not Found: записи не было;
//   - 500 Internal Server Error.
func (h *Handler) DeleteKeyboard(w http.ResponseWriter, r *http.Request) {
	id, err := keyboardID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrKeyboardNotFound)
		return
	}

	if err := h.Svc.Keyboards.Delete(r.Context(), id); err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			WriteError(w, http.StatusNotFound, serr.ErrKeyboardNotFound)
			return
		}
		h.Log.Logger.Sugar().Error("delete keyboard failed")
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
