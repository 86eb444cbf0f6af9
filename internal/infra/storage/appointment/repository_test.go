package appointment

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock, db
}

var start = time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

func appointmentRow(rows *sqlmock.Rows, id int64, userID string, street interface{}) *sqlmock.Rows {
	return rows.AddRow(
		id, userID, "READING", "Ana", "ana@example.com", "555-0100",
		street, "Seattle", nil, nil,
		start, "10:00:00", "10:30:00", false, false,
		start, start,
	)
}

func TestGetAll(t *testing.T) {
	repo, mock, _ := newMock(t)

	rows := sqlmock.NewRows(columns)
	appointmentRow(rows, 1, "user-1", "1 Pike St")
	appointmentRow(rows, 2, "user-2", nil)

	mock.ExpectQuery(`SELECT id, user_id, .* FROM appointments ORDER BY date ASC, id ASC$`).
		WillReturnRows(rows)

	appointments, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, appointments, 2)

	a := appointments[0]
	assert.Equal(t, domain.ID(1), a.ID)
	assert.Equal(t, domain.ActivityReading, a.ActivityType)
	assert.Equal(t, types.TimeString("10:00"), a.StartTime)
	assert.Equal(t, types.TimeString("10:30"), a.EndTime)
	assert.Equal(t, "1 Pike St, Seattle", a.Address.Location())
	assert.Nil(t, appointments[1].Address.Street)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll_InTransactionLocksRows(t *testing.T) {
	_, mock, db := newMock(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM appointments ORDER BY date ASC, id ASC FOR SHARE`).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectCommit()

	tx, err := dbmetrics.SQLDB{DB: db}.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = repo.GetAll(dbmetrics.WithTx(context.Background(), tx))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, _ := newMock(t)

	mock.ExpectQuery(`FROM appointments WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUserID_Filters(t *testing.T) {
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter domain.AppointmentFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "all",
			filter: domain.FilterAll,
			query:  `FROM appointments WHERE user_id = \$1 ORDER BY date DESC$`,
			args:   []driver.Value{"user-1"},
		},
		{
			name:   "past",
			filter: domain.FilterPast,
			query:  `FROM appointments WHERE user_id = \$1 AND date < \$2 ORDER BY date DESC$`,
			args:   []driver.Value{"user-1", now},
		},
		{
			name:   "upcoming",
			filter: domain.FilterUpcoming,
			query:  `FROM appointments WHERE user_id = \$1 AND date >= \$2 ORDER BY date ASC$`,
			args:   []driver.Value{"user-1", now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := newMock(t)

			mock.ExpectQuery(tt.query).
				WithArgs(tt.args...).
				WillReturnRows(appointmentRow(sqlmock.NewRows(columns), 1, "user-1", nil))

			appointments, err := repo.GetByUserID(context.Background(), "user-1", tt.filter, now)
			require.NoError(t, err)
			assert.Len(t, appointments, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreate(t *testing.T) {
	repo, mock, _ := newMock(t)

	created := start.Add(time.Minute)
	mock.ExpectQuery(`INSERT INTO appointments \(user_id,activity_type,name,email,phone,street,city,state,postal_code,date,start_time,end_time,is_virtual,created_by_admin\) VALUES .* RETURNING id, created_at, updated_at`).
		WithArgs("user-1", "READING", "Ana", "", "", "1 Pike St", nil, nil, nil, start, "10:00", "10:30", true, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), created, created))

	appointment, err := repo.Create(context.Background(), &domain.Appointment{
		UserID:       "user-1",
		ActivityType: domain.ActivityReading,
		Name:         "Ana",
		Address:      domain.Address{Street: ptr.Ptr("1 Pike St")},
		Date:         start,
		StartTime:    "10:00",
		EndTime:      "10:30",
		IsVirtual:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID(7), appointment.ID)
	assert.Equal(t, created, appointment.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExecError(t *testing.T) {
	repo, mock, _ := newMock(t)

	mock.ExpectQuery(`INSERT INTO appointments`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Appointment{UserID: "u", Date: start})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestUpdate(t *testing.T) {
	repo, mock, _ := newMock(t)

	mock.ExpectQuery(`UPDATE appointments SET .* updated_at = NOW\(\) WHERE id = \$\d+ RETURNING user_id, created_by_admin, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_by_admin", "created_at", "updated_at"}).
			AddRow("owner-1", true, start, start))

	updated, err := repo.Update(context.Background(), 3, &domain.Appointment{
		ActivityType: domain.ActivityCleansing,
		Date:         start,
		StartTime:    "10:00",
		EndTime:      "10:45",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID(3), updated.ID)
	assert.Equal(t, "owner-1", updated.UserID)
	assert.True(t, updated.CreatedByAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, _ := newMock(t)

	mock.ExpectQuery(`UPDATE appointments`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 3, &domain.Appointment{Date: start})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock, _ := newMock(t)

	mock.ExpectExec(`DELETE FROM appointments WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM appointments WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
