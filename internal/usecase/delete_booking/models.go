package delete_booking

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Snapshot текущий список элементов и его группировка по дате, которыми владеет вызывающая сторона
type Snapshot[T any] struct {
	Items   []T
	Grouped domain.GroupedByDate[T]
}

// Request модель запроса на удаление.
// Current обновляется только после успешного удаления во внешнем хранилище.
type Request[T any] struct {
	ID      domain.ID
	Actor   *domain.User
	Current *Snapshot[T]
	Gate    ConfirmationGate // nil - политика по умолчанию из use case

	OnSuccess  func(deleted T) // вызывается только при успехе
	OnComplete func()          // вызывается всегда
}

// Response результат удаления
type Response struct {
	Deleted          domain.ItemRef
	RemovedFromStore int
}
