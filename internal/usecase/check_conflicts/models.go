package check_conflicts

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на проверку пересечений
type Request struct {
	CandidateStart time.Time       // Время начала новой записи/события
	ActivityType   string          // Тип (READING, WORKSHOP, BEMBE, ...), регистр важен
	IsVirtual      bool            // Онлайн или очно
	Location       *string         // Адрес (опционально)
	Exclude        *domain.ItemRef // Запись, которую не нужно учитывать (при редактировании)
}

// Response результат проверки
type Response struct {
	Conflict               bool            // Есть пересечение с существующей записью
	ConflictsWith          *domain.ItemRef // Первая найденная пересекающаяся запись
	CandidateEnd           time.Time       // Конец интервала кандидата (start + длительность)
	CandidateBufferMinutes int             // Буфер кандидата (к его собственному интервалу не применяется)
	KnownType              bool            // Тип найден в таблице длительностей
}
