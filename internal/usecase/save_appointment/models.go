package save_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание или обновление записи
type Request struct {
	ID           *domain.ID       // nil - создание, иначе обновление
	Actor        *domain.User     // Текущий пользователь
	UserID       string           // Владелец записи; задается только администратором, по умолчанию Actor.UID
	ActivityType domain.ActivityType
	Name         string
	Email        string
	Phone        string
	Address      domain.Address
	Date         time.Time        // Время начала
	StartTime    types.TimeString // Пусто - берется из Date в часовом поясе сервиса
	EndTime      types.TimeString // Пусто - StartTime + длительность типа
	IsVirtual    bool
}

// Response результат сохранения
type Response struct {
	Appointment     domain.Appointment
	Created         bool
	ConflictChecked bool            // false, если проверку пересечений выполнить не удалось
	Conflict        bool            // Предупреждение: время пересекается с другой записью
	ConflictsWith   *domain.ItemRef // Первая пересекающаяся запись
}
