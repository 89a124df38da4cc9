package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/enrollment"
	"github.com/jhoicas/Asistencia-api/internal/application/identification"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/lock"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Asistencia-api/internal/testutil"
)

type env struct {
	employees  *memory.EmployeeRepo
	attendance *memory.AttendanceRepo
	notif      *testutil.RecordingNotifier
	clock      *testutil.FakeClock
	enroll     *enrollment.UseCase
	punch      *UseCase
}

func newEnv() *env {
	e := &env{
		employees:  memory.NewEmployeeRepository(),
		attendance: memory.NewAttendanceRepository(),
		notif:      &testutil.RecordingNotifier{},
		clock:      testutil.NewFakeClock(time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)),
	}
	e.enroll = enrollment.NewUseCase(e.employees, e.notif, enrollment.DefaultConfig(),
		enrollment.WithClock(e.clock), enrollment.WithSleeper(&testutil.NoSleep{}))
	ident := identification.NewUseCase(e.employees, e.notif, nil, identification.DefaultConfig())
	att := attendance.NewUseCase(memory.NewTxRunner(e.attendance), lock.NewLocal(), attendance.Config{},
		attendance.WithClock(e.clock))
	e.punch = NewUseCase(ident, att, e.notif)
	return e
}

func TestPunchMessage(t *testing.T) {
	assert.Equal(t, "Entrada registrada: Ana", punchMessage(entity.AttendanceTypeIN, "Ana"))
	assert.Equal(t, "Salida registrada: Ana", punchMessage(entity.AttendanceTypeOUT, "Ana"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: enrolar y marcar
// ──────────────────────────────────────────────────────────────────────────────

func TestPunch_AnaEntradaYSalida(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	emp, err := e.enroll.Enroll(ctx, "st-1", testutil.NewScriptedCapturer([]byte{10, 20, 30}, []byte{12, 18, 33}),
		entity.EmployeeProfile{Name: "Ana"})
	require.NoError(t, err)

	in := e.punch.Punch(ctx, "st-1", testutil.NewScriptedCapturer([]byte{10, 20, 30}))
	require.True(t, in.Success, in.Message)
	assert.Equal(t, emp.ID, in.Employee.ID)
	assert.Equal(t, 100.0, in.Match.Score)
	require.NotNil(t, in.Record)
	assert.Equal(t, entity.AttendanceTypeIN, in.Record.Type)
	assert.Equal(t, "Entrada registrada: Ana", in.Message)

	e.clock.Advance(8 * time.Hour)
	out := e.punch.Punch(ctx, "st-1", testutil.NewScriptedCapturer([]byte{10, 20, 30}))
	require.True(t, out.Success)
	assert.Equal(t, entity.AttendanceTypeOUT, out.Record.Type)
	assert.Equal(t, "Salida registrada: Ana", out.Message)

	assert.Contains(t, e.notif.Messages(), "Salida registrada: Ana")
}

func TestPunch_HuellaNoReconocida(t *testing.T) {
	e := newEnv()

	res := e.punch.Punch(context.Background(), "st-1", testutil.NewScriptedCapturer([]byte{1, 2, 3}))

	assert.False(t, res.Success)
	assert.Equal(t, dto.CodeNoMatch, res.Error)
	assert.Nil(t, res.Record)
	all, _ := e.attendance.ListByDate(context.Background(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, all, "sin identificación no hay marcación")
}

func TestPunch_ErrorDeAsistenciaConservaLaIdentificacion(t *testing.T) {
	e := newEnv()
	_, err := e.enroll.Enroll(context.Background(), "st-1", testutil.NewScriptedCapturer([]byte{7, 7}, []byte{7, 7}),
		entity.EmployeeProfile{Name: "Luis"})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())

	// el capturador entrega la muestra y luego se cancela antes de registrar
	res := e.punch.Punch(ctx, "st-1", cancelAfterCapture{inner: testutil.NewScriptedCapturer([]byte{7, 7}), cancel: cancel})

	assert.False(t, res.Success)
	require.NotNil(t, res.Employee)
	assert.Equal(t, "Luis", res.Employee.Name)
	assert.Nil(t, res.Record)
}

type cancelAfterCapture struct {
	inner  *testutil.ScriptedCapturer
	cancel context.CancelFunc
}

func (c cancelAfterCapture) Capture(ctx context.Context, timeout time.Duration) (entity.Template, error) {
	tpl, err := c.inner.Capture(ctx, timeout)
	c.cancel()
	return tpl, err
}
