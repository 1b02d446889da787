package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись не найдена или опрос не принимает ответы.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, дубликат email игрока).
	ErrConflict = errors.New("resource state conflict")
)
