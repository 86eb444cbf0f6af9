package calendar

import "errors"

var (
	// ErrInvalidRange возвращается для daysRange меньше -1 или больше domain.MaxDaysRange
	ErrInvalidRange = errors.New("calendar: invalid days range")

	// ErrExport возвращается при ошибке формирования iCalendar
	ErrExport = errors.New("calendar: export failed")
)
