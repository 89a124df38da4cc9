package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `id, employee_id, type, ts, local_date, station_id`

// AttendanceRepo registro append-only de marcaciones sobre PostgreSQL (usable con pool o tx).
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

// FindLastRecordForDay con timestamps iguales gana la última insertada (seq). Dentro de una tx la consulta corre en un savepoint: si falla, la tx sigue
// utilizable y el caller puede decidir registrar igualmente.
func (r *AttendanceRepo) FindLastRecordForDay(ctx context.Context, employeeID string, localDate time.Time) (*entity.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND local_date = $2
		ORDER BY ts DESC, seq DESC
		LIMIT 1`

	q := r.q
	var sp pgx.Tx
	if tx, ok := r.q.(pgx.Tx); ok {
		var err error
		if sp, err = tx.Begin(ctx); err != nil {
			return nil, storeErr("savepoint last record", err)
		}
		q = sp
	}

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, localDate))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		if sp != nil {
			_ = sp.Rollback(ctx)
		}
		return nil, storeErr("find last record for day", err)
	}
	if sp != nil {
		if cerr := sp.Commit(ctx); cerr != nil {
			return nil, storeErr("release savepoint", cerr)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rec, nil
}

// InsertRecord agrega una marcación.
func (r *AttendanceRepo) InsertRecord(ctx context.Context, rec *entity.AttendanceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `
		INSERT INTO attendance_records (id, employee_id, type, ts, local_date, station_id)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.EmployeeID, rec.Type, rec.Timestamp, rec.LocalDate, rec.StationID)
	if err != nil {
		return storeErr("insert attendance record", err)
	}
	return nil
}

// ListByDate marcaciones de un día local, por empleado y timestamp.
func (r *AttendanceRepo) ListByDate(ctx context.Context, localDate time.Time) ([]*entity.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records WHERE local_date = $1
		ORDER BY employee_id, ts, seq`
	return r.list(ctx, "list records by date", query, localDate)
}

// ListByEmployee marcaciones de un empleado entre dos días locales (inclusive).
func (r *AttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]*entity.AttendanceRecord, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, nil
	}
	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND local_date BETWEEN $2 AND $3
		ORDER BY ts, seq`
	return r.list(ctx, "list records by employee", query, employeeID, from, to)
}

func (r *AttendanceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.AttendanceRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()
	var list []*entity.AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, storeErr("scan attendance record", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return list, nil
}

func scanRecord(row pgx.Row) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Type, &rec.Timestamp, &rec.LocalDate, &rec.StationID); err != nil {
		return nil, err
	}
	rec.LocalDate = time.Date(rec.LocalDate.Year(), rec.LocalDate.Month(), rec.LocalDate.Day(), 0, 0, 0, 0, time.UTC)
	return &rec, nil
}
