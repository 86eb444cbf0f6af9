package save_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("save_appointment: invalid input data")

	// ErrNotFound возвращается, когда обновляемая запись не найдена
	ErrNotFound = errors.New("save_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не может изменять запись
	ErrAccessDenied = errors.New("save_appointment: access denied")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("save_appointment: internal error")
)
