package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrEmptyBody возвращается, когда тело запроса пустое
var ErrEmptyBody = errors.New("empty request body")

// DecodeJSON декодирует тело запроса, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// PathID извлекает и нормализует ID из переменной пути
func PathID(r *http.Request, name string) (domain.ID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing path variable %s", domain.ErrInvalidID, name)
	}
	return domain.ParseID(raw)
}

// QueryInt читает целочисленный query параметр; def если параметр не задан
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// QueryBool читает булев query параметр; def если параметр не задан
func QueryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}

// CalendarSettings читает daysRange и includePast поверх настроек по умолчанию
func CalendarSettings(r *http.Request, defaults calendar.RangeSettings) (calendar.RangeSettings, error) {
	daysRange, err := QueryInt(r, "daysRange", defaults.DaysRange)
	if err != nil {
		return defaults, fmt.Errorf("%w: daysRange: %v", calendar.ErrInvalidRange, err)
	}

	includePast, err := QueryBool(r, "includePast", defaults.IncludePast)
	if err != nil {
		return defaults, fmt.Errorf("%w: includePast: %v", calendar.ErrInvalidRange, err)
	}

	settings, err := defaults.WithRange(daysRange)
	if err != nil {
		return defaults, err
	}
	return settings.WithIncludePast(includePast), nil
}
