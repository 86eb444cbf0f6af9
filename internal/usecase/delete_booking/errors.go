package delete_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_booking: invalid input data")

	// ErrCancelled возвращается, если удаление не подтверждено
	ErrCancelled = errors.New("delete_booking: deletion not confirmed")

	// ErrNotFound возвращается, если элемента нет в текущем списке
	ErrNotFound = errors.New("delete_booking: item not found")

	// ErrAccessDenied возвращается, если у пользователя нет прав на удаление
	ErrAccessDenied = errors.New("delete_booking: access denied")

	// ErrUpstream возвращается при ошибке внешнего хранилища; локальное состояние не изменяется
	ErrUpstream = errors.New("delete_booking: failed to delete in storage")
)
