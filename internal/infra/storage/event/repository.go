package event

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

const table = "events"

var columns = []string{
	"id",
	"event_name",
	"event_type",
	"client_name",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"is_virtual",
	"street",
	"city",
	"state",
	"postal_code",
	"description",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с событиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll получает все события.
// Внутри транзакции строки блокируются на чтение (FOR SHARE).
func (r *Repository) GetAll(ctx context.Context) ([]domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_date ASC", "start_time ASC", "id ASC")

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

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan event: %v", ErrScanRow, err)
		}
		events = append(events, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id domain.ID) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": int64(id)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanEvent(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}

	return e, nil
}

// Create создает новое событие
func (r *Repository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"event_name",
			"event_type",
			"client_name",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"is_virtual",
			"street",
			"city",
			"state",
			"postal_code",
			"description",
		).
		Values(
			e.EventName,
			string(e.EventType),
			e.ClientName,
			e.StartDate,
			nullDate(e.EndDate),
			e.StartTime,
			e.EndTime,
			e.IsVirtual,
			e.Address.Street,
			e.Address.City,
			e.Address.State,
			e.Address.PostalCode,
			e.Description,
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

	e.ID = domain.ID(id)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// Update обновляет событие целиком
func (r *Repository) Update(ctx context.Context, id domain.ID, e *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("event_name", e.EventName).
		Set("event_type", string(e.EventType)).
		Set("client_name", e.ClientName).
		Set("start_date", e.StartDate).
		Set("end_date", nullDate(e.EndDate)).
		Set("start_time", e.StartTime).
		Set("end_time", e.EndTime).
		Set("is_virtual", e.IsVirtual).
		Set("street", e.Address.Street).
		Set("city", e.Address.City).
		Set("state", e.Address.State).
		Set("postal_code", e.Address.PostalCode).
		Set("description", e.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": int64(id)}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	e.ID = id
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// Delete удаляет событие
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
		return ErrEventNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e                    domain.Event
		id                   int64
		eventType            string
		endDate              sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&id,
		&e.EventName,
		&eventType,
		&e.ClientName,
		&e.StartDate,
		&endDate,
		&e.StartTime,
		&e.EndTime,
		&e.IsVirtual,
		&e.Address.Street,
		&e.Address.City,
		&e.Address.State,
		&e.Address.PostalCode,
		&e.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.ID = domain.ID(id)
	e.EventType = domain.EventType(eventType)
	e.EndDate = endDate.Time
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

// nullDate пустая дата окончания хранится как NULL
func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
