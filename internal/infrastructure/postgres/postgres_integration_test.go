//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/lock"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Asistencia-api/internal/testutil/containers"
)

var t0 = time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)

func employee(name string, raw []byte, enrolled time.Time) *entity.Employee {
	return &entity.Employee{
		ID:         uuid.NewString(),
		Name:       name,
		Template:   entity.NewTemplate(entity.TemplateFormatRAW, raw, enrolled),
		Active:     true,
		EnrolledAt: enrolled,
	}
}

func TestPostgres(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	employees := postgres.NewEmployeeRepository(pg.Pool)

	t.Run("Migrate es idempotente", func(t *testing.T) {
		applied, err := postgres.Migrate(ctx, pg.Pool)
		require.NoError(t, err)
		assert.Empty(t, applied)
	})

	t.Run("Empleados: alta, orden estable y unicidad entre activos", func(t *testing.T) {
		pg.Truncate(t)
		b := employee("Beatriz", []byte{2, 2}, t0.Add(time.Hour))
		a := employee("Ana", []byte{1, 1}, t0)
		require.NoError(t, employees.InsertEmployee(ctx, b))
		require.NoError(t, employees.InsertEmployee(ctx, a))

		list, err := employees.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, a.ID, list[0].ID, "orden por enrolled_at")
		assert.Equal(t, []byte{1, 1}, list[0].Template.Raw)

		dup := employee("Clon", []byte{1, 1}, t0.Add(2*time.Hour))
		assert.ErrorIs(t, employees.InsertEmployee(ctx, dup), domain.ErrDuplicateTemplate)

		found, err := employees.FindActiveByExactTemplate(ctx, []byte{1, 1})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, a.ID, found.ID)

		require.NoError(t, employees.SetActive(ctx, a.ID, false))
		found, err = employees.FindActiveByExactTemplate(ctx, []byte{1, 1})
		require.NoError(t, err)
		assert.Nil(t, found, "un inactivo no se identifica")

		require.NoError(t, employees.InsertEmployee(ctx, dup), "la baja libera la huella")
		assert.ErrorIs(t, employees.SetActive(ctx, a.ID, true), domain.ErrDuplicateTemplate)
		assert.ErrorIs(t, employees.SetActive(ctx, uuid.NewString(), false), domain.ErrNotFound)

		missing, err := employees.GetByID(ctx, "no-es-uuid")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Marcaciones: RecordEvent alterna bajo concurrencia", func(t *testing.T) {
		pg.Truncate(t)
		ana := employee("Ana", []byte{9}, t0)
		require.NoError(t, employees.InsertEmployee(ctx, ana))

		// locker local por instancia: la serialización entre instancias la da el advisory lock
		uc1 := attendance.NewUseCase(postgres.NewTxRunner(pg.Pool), lock.NewLocal(), attendance.Config{})
		uc2 := attendance.NewUseCase(postgres.NewTxRunner(pg.Pool), lock.NewLocal(), attendance.Config{})

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			uc := uc1
			if i%2 == 1 {
				uc = uc2
			}
			go func() {
				defer wg.Done()
				_, err := uc.RecordEvent(ctx, ana, "st-1")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		repo := postgres.NewAttendanceRepository(pg.Pool)
		today := entity.LocalDate(time.Now(), time.UTC)
		records, err := repo.ListByDate(ctx, today)
		require.NoError(t, err)
		require.Len(t, records, n)
		for i, r := range records {
			want := entity.AttendanceTypeIN
			if i%2 == 1 {
				want = entity.AttendanceTypeOUT
			}
			assert.Equal(t, want, r.Type, "posición %d", i)
			assert.Equal(t, today, r.LocalDate)
		}

		last, err := repo.FindLastRecordForDay(ctx, ana.ID, today)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, entity.AttendanceTypeOUT, last.Type)

		history, err := repo.ListByEmployee(ctx, ana.ID, today.AddDate(0, 0, -1), today)
		require.NoError(t, err)
		assert.Len(t, history, n)
	})

	t.Run("Marcaciones: mismo timestamp desempata por orden de inserción", func(t *testing.T) {
		pg.Truncate(t)
		ana := employee("Ana", []byte{7}, t0)
		require.NoError(t, employees.InsertEmployee(ctx, ana))
		repo := postgres.NewAttendanceRepository(pg.Pool)
		day := entity.LocalDate(t0, time.UTC)

		// ids en orden inverso al de inserción: el desempate no depende del UUID
		first := &entity.AttendanceRecord{ID: "ffffffff-ffff-4fff-bfff-ffffffffffff", EmployeeID: ana.ID,
			Type: entity.AttendanceTypeIN, Timestamp: t0, LocalDate: day}
		second := &entity.AttendanceRecord{ID: "00000000-0000-4000-8000-000000000001", EmployeeID: ana.ID,
			Type: entity.AttendanceTypeOUT, Timestamp: t0, LocalDate: day}
		require.NoError(t, repo.InsertRecord(ctx, first))
		require.NoError(t, repo.InsertRecord(ctx, second))

		last, err := repo.FindLastRecordForDay(ctx, ana.ID, day)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, second.ID, last.ID, "gana la última insertada")

		list, err := repo.ListByDate(ctx, day)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
	})

	t.Run("Usuarios: email único", func(t *testing.T) {
		pg.Truncate(t)
		users := postgres.NewUserRepository(pg.Pool)
		u := &entity.User{
			ID: uuid.NewString(), Email: "admin@empresa.co", PasswordHash: "x", Name: "Admin",
			Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: t0, UpdatedAt: t0,
		}
		require.NoError(t, users.Create(ctx, u))

		again := *u
		again.ID = uuid.NewString()
		assert.ErrorIs(t, users.Create(ctx, &again), domain.ErrEmailAlreadyExists)

		got, err := users.FindByEmail(ctx, "admin@empresa.co")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	})
}
