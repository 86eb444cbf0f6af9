package save_event

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание или обновление события
type Request struct {
	ID          *domain.ID // nil - создание, иначе обновление
	Actor       *domain.User
	EventName   string
	EventType   domain.EventType
	ClientName  string
	StartDate   time.Time // Календарная дата, время суток игнорируется
	EndDate     time.Time // Пусто - однодневное событие
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsVirtual   bool
	Address     domain.Address
	Description string
}

// Response результат сохранения
type Response struct {
	Event           domain.Event
	Created         bool
	ConflictChecked bool
	Conflict        bool
	ConflictsWith   *domain.ItemRef
}
