package firebaseauth

import "errors"

var (
	// ErrMissingToken возвращается, когда заголовок Authorization отсутствует или не Bearer
	ErrMissingToken = errors.New("firebaseauth: missing bearer token")

	// ErrInvalidToken возвращается, когда Firebase отклонил токен
	ErrInvalidToken = errors.New("firebaseauth: invalid token")

	// ErrInit возвращается при ошибке инициализации Firebase
	ErrInit = errors.New("firebaseauth: init failed")
)
