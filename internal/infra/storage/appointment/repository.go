package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"user_id",
	"activity_type",
	"name",
	"email",
	"phone",
	"street",
	"city",
	"state",
	"postal_code",
	"date",
	"start_time",
	"end_time",
	"is_virtual",
	"created_by_admin",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll получает все записи.
// Внутри транзакции строки блокируются на чтение (FOR SHARE), чтобы проверка
// пересечений и последующая запись видели один и тот же набор.
func (r *Repository) GetAll(ctx context.Context) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("date ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id domain.ID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": int64(id)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// GetByUserID получает записи пользователя.
// filter: past - начавшиеся до now (сначала последние), upcoming - начиная с now (сначала ближайшие),
// пустой - все записи.
func (r *Repository) GetByUserID(ctx context.Context, userID string, filter domain.AppointmentFilter, now time.Time) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID})

	switch filter {
	case domain.FilterPast:
		selectBuilder = selectBuilder.Where(squirrel.Lt{"date": now}).OrderBy("date DESC")
	case domain.FilterUpcoming:
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": now}).OrderBy("date ASC")
	default:
		selectBuilder = selectBuilder.OrderBy("date DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Create создает новую запись
// Если в контексте передана активная транзакция (через context.Value), использует её.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"activity_type",
			"name",
			"email",
			"phone",
			"street",
			"city",
			"state",
			"postal_code",
			"date",
			"start_time",
			"end_time",
			"is_virtual",
			"created_by_admin",
		).
		Values(
			appointment.UserID,
			string(appointment.ActivityType),
			appointment.Name,
			appointment.Email,
			appointment.Phone,
			appointment.Address.Street,
			appointment.Address.City,
			appointment.Address.State,
			appointment.Address.PostalCode,
			appointment.Date,
			appointment.StartTime,
			appointment.EndTime,
			appointment.IsVirtual,
			appointment.CreatedByAdmin,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.ID = domain.ID(id)
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// Update обновляет запись целиком. Владелец и признак создания администратором не меняются.
func (r *Repository) Update(ctx context.Context, id domain.ID, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("activity_type", string(appointment.ActivityType)).
		Set("name", appointment.Name).
		Set("email", appointment.Email).
		Set("phone", appointment.Phone).
		Set("street", appointment.Address.Street).
		Set("city", appointment.Address.City).
		Set("state", appointment.Address.State).
		Set("postal_code", appointment.Address.PostalCode).
		Set("date", appointment.Date).
		Set("start_time", appointment.StartTime).
		Set("end_time", appointment.EndTime).
		Set("is_virtual", appointment.IsVirtual).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": int64(id)}).
		Suffix("RETURNING user_id, created_by_admin, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.UserID,
		&appointment.CreatedByAdmin,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	appointment.ID = id
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// Delete удаляет запись
func (r *Repository) Delete(ctx context.Context, id domain.ID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": int64(id)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		id                   int64
		activityType         string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&id,
		&a.UserID,
		&activityType,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.Address.Street,
		&a.Address.City,
		&a.Address.State,
		&a.Address.PostalCode,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.IsVirtual,
		&a.CreatedByAdmin,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ID = domain.ID(id)
	a.ActivityType = domain.ActivityType(activityType)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует строки результата в список записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]domain.Appointment, error) {
	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
