package check_conflicts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (например, пустое время начала)
	ErrInvalidInput = errors.New("check_conflicts: invalid input data")

	// ErrInvalidItem возвращается, когда у существующей записи нельзя вычислить время начала
	ErrInvalidItem = errors.New("check_conflicts: existing item has invalid start")

	// ErrUpstream возвращается, когда не удалось получить записи или события из хранилища
	ErrUpstream = errors.New("check_conflicts: failed to fetch bookings")
)
