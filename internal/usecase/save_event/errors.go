package save_event

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("save_event: invalid input data")

	// ErrNotFound возвращается, когда обновляемое событие не найдено
	ErrNotFound = errors.New("save_event: event not found")

	// ErrAccessDenied возвращается, когда пользователь не администратор
	ErrAccessDenied = errors.New("save_event: access denied")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("save_event: internal error")
)
