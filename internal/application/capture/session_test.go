package capture_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/application/capture"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/testutil"
)

// fakeDevice lector controlado por el test. Si sample != nil lo entrega al armarse.
type fakeDevice struct {
	mu       sync.Mutex
	sample   []byte
	startErr error
	stopErr  error
	deliver  func([]byte)
	started  chan struct{}
	starts   int
	stops    int
}

func newFakeDevice() *fakeDevice { return &fakeDevice{started: make(chan struct{}, 8)} }

func (d *fakeDevice) ID() string { return "fake" }

func (d *fakeDevice) Format() entity.TemplateFormat { return entity.TemplateFormatRAW }

func (d *fakeDevice) Enumerate(context.Context) ([]string, error) { return []string{"fake"}, nil }

func (d *fakeDevice) StartAcquisition(_ context.Context, deliver func([]byte)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.starts++
	if d.startErr != nil {
		return d.startErr
	}
	d.deliver = deliver
	if d.sample != nil {
		go deliver(d.sample)
	}
	d.started <- struct{}{}
	return nil
}

func (d *fakeDevice) StopAcquisition(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stops++
	return d.stopErr
}

// push entrega una muestra con el último deliver registrado (aunque esté desarmado).
func (d *fakeDevice) push(sample []byte) {
	d.mu.Lock()
	deliver := d.deliver
	d.mu.Unlock()
	if deliver != nil {
		deliver(sample)
	}
}

func (d *fakeDevice) counts() (starts, stops int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.starts, d.stops
}

type captureMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *captureMetrics) ObserveCapture(o string) {
	m.mu.Lock()
	m.outcomes = append(m.outcomes, o)
	m.mu.Unlock()
}

func (m *captureMetrics) ObserveMatch(float64, bool) {}

func (m *captureMetrics) ObserveEnrollment(string) {}

func (m *captureMetrics) ObserveIdentification(string) {}

func (m *captureMetrics) ObserveAttendance(string) {}

// ──────────────────────────────────────────────────────────────────────────────
// Capture
// ──────────────────────────────────────────────────────────────────────────────

func TestCapture_Exito(t *testing.T) {
	dev := newFakeDevice()
	dev.sample = []byte{1, 2, 3}
	notif := &testutil.RecordingNotifier{}
	clock := testutil.NewFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	m := &captureMetrics{}
	s := capture.NewSession("st-1", dev, notif, capture.WithClock(clock), capture.WithMetrics(m))

	tpl, err := s.Capture(context.Background(), time.Second)

	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, tpl.Raw)
	assert.Equal(t, entity.TemplateFormatRAW, tpl.Format)
	assert.Equal(t, clock.Now(), tpl.CapturedAt)
	assert.Equal(t, []string{capture.MsgWaiting, capture.MsgCaptured}, notif.Messages())
	assert.Equal(t, []string{capture.OutcomeCaptured}, m.outcomes)
	assert.False(t, s.Busy())
	starts, stops := dev.counts()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, stops, "el lector debe quedar fuera de adquisición")
}

func TestCapture_TimeoutYMuestraTardiaDescartada(t *testing.T) {
	dev := newFakeDevice()
	notif := &testutil.RecordingNotifier{}
	s := capture.NewSession("st-1", dev, notif)

	_, err := s.Capture(context.Background(), 20*time.Millisecond)

	assert.ErrorIs(t, err, domain.ErrCaptureTimeout)
	assert.Equal(t, []string{capture.MsgWaiting, capture.MsgTimedOut}, notif.Messages())
	_, stops := dev.counts()
	assert.Equal(t, 1, stops)

	// la muestra que llega tarde no debe bloquear ni afectar una captura nueva
	done := make(chan struct{})
	go func() { dev.push([]byte{9}); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deliver tardío bloqueó")
	}
	assert.False(t, s.Busy())
}

func TestCapture_SesionOcupada(t *testing.T) {
	dev := newFakeDevice()
	m := &captureMetrics{}
	s := capture.NewSession("st-1", dev, nil, capture.WithMetrics(m))

	first := make(chan error, 1)
	go func() {
		_, err := s.Capture(context.Background(), 2*time.Second)
		first <- err
	}()
	<-dev.started
	assert.True(t, s.Busy())

	_, err := s.Capture(context.Background(), time.Second)
	assert.ErrorIs(t, err, domain.ErrSessionBusy)

	dev.push([]byte{7, 7})
	require.NoError(t, <-first)
	starts, _ := dev.counts()
	assert.Equal(t, 1, starts, "la segunda captura no debe tocar el lector")
	assert.Contains(t, m.outcomes, capture.OutcomeBusy)
}

func TestCapture_ErrorAlIniciar(t *testing.T) {
	dev := newFakeDevice()
	dev.startErr = errors.New("usb desconectado")
	notif := &testutil.RecordingNotifier{}
	s := capture.NewSession("st-1", dev, notif)

	_, err := s.Capture(context.Background(), time.Second)

	assert.ErrorIs(t, err, domain.ErrDeviceError)
	assert.Contains(t, err.Error(), "usb desconectado")
	assert.Empty(t, notif.Messages())
	assert.False(t, s.Busy(), "un error al iniciar debe liberar la sesión")
}

func TestCapture_MuestraVacia(t *testing.T) {
	dev := newFakeDevice()
	dev.sample = []byte{}
	s := capture.NewSession("st-1", dev, nil)

	_, err := s.Capture(context.Background(), time.Second)

	assert.ErrorIs(t, err, domain.ErrDeviceError)
}

func TestCapture_ErrorAlDetener(t *testing.T) {
	dev := newFakeDevice()
	dev.sample = []byte{1}
	dev.stopErr = errors.New("stop falló")
	s := capture.NewSession("st-1", dev, nil)

	_, err := s.Capture(context.Background(), time.Second)

	assert.ErrorIs(t, err, domain.ErrDeviceError)
}

func TestCapture_Cancelada(t *testing.T) {
	dev := newFakeDevice()
	s := capture.NewSession("st-1", dev, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		_, err := s.Capture(ctx, 5*time.Second)
		errc <- err
	}()
	<-dev.started
	cancel()

	err := <-errc
	assert.ErrorIs(t, err, domain.ErrCaptureCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	_, stops := dev.counts()
	assert.Equal(t, 1, stops)
	assert.False(t, s.Busy())
}

func TestCapture_SecuencialReutilizaLaSesion(t *testing.T) {
	dev := newFakeDevice()
	dev.sample = []byte{4, 5}
	s := capture.NewSession("st-1", dev, nil)

	for i := 0; i < 3; i++ {
		_, err := s.Capture(context.Background(), time.Second)
		require.NoError(t, err)
	}
	starts, stops := dev.counts()
	assert.Equal(t, 3, starts)
	assert.Equal(t, 3, stops)
}
