package bookingapi

import "errors"

var (
	// ErrNotFound возвращается, когда запись или событие не найдены (404)
	ErrNotFound = errors.New("bookingapi client: not found")

	// ErrBadRequest возвращается, когда сервис отклонил данные (400)
	ErrBadRequest = errors.New("bookingapi client: bad request")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, сериализация)
	ErrInternal = errors.New("bookingapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")
)
