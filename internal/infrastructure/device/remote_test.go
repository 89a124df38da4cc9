package device

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

func grayImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	img.SetGray(1, 1, color.Gray{Y: 200})
	return img
}

func pngSample(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, grayImage()))
	return buf.Bytes()
}

func bmpSample(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, grayImage()))
	return buf.Bytes()
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateSample
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateSample(t *testing.T) {
	pngData, bmpData := pngSample(t), bmpSample(t)
	tests := []struct {
		name   string
		format entity.TemplateFormat
		sample []byte
		valid  bool
	}{
		{"png válido", entity.TemplateFormatPNG, pngData, true},
		{"bmp válido", entity.TemplateFormatBMP, bmpData, true},
		{"raw cualquiera", entity.TemplateFormatRAW, []byte{1, 2, 3}, true},
		{"vacía", entity.TemplateFormatRAW, nil, false},
		{"bmp donde se espera png", entity.TemplateFormatPNG, bmpData, false},
		{"png donde se espera bmp", entity.TemplateFormatBMP, pngData, false},
		{"basura como png", entity.TemplateFormatPNG, []byte("no soy una imagen"), false},
		{"formato desconocido", entity.TemplateFormat("JPEG"), pngData, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSample(tt.format, tt.sample)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSample)
			}
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoteDevice
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoteDevice_PushEntregaUnaSolaVez(t *testing.T) {
	d := NewRemoteDevice("st-1", entity.TemplateFormatRAW)
	var got [][]byte
	require.NoError(t, d.StartAcquisition(context.Background(), func(b []byte) { got = append(got, b) }))
	assert.True(t, d.Acquiring())

	sample := []byte{1, 2, 3}
	require.NoError(t, d.Push(sample))
	sample[0] = 99

	assert.ErrorIs(t, d.Push([]byte{4}), ErrNotAcquiring, "el handle se consume con la primera muestra")
	require.Len(t, got, 1)
	assert.Equal(t, []byte{1, 2, 3}, got[0], "se entrega una copia")
	assert.False(t, d.Acquiring())
}

func TestRemoteDevice_SinAdquisicion(t *testing.T) {
	d := NewRemoteDevice("st-1", entity.TemplateFormatRAW)
	assert.ErrorIs(t, d.Push([]byte{1}), ErrNotAcquiring)
}

func TestRemoteDevice_DobleArmado(t *testing.T) {
	d := NewRemoteDevice("st-1", entity.TemplateFormatRAW)
	require.NoError(t, d.StartAcquisition(context.Background(), func([]byte) {}))

	assert.ErrorIs(t, d.StartAcquisition(context.Background(), func([]byte) {}), ErrAlreadyAcquiring)
	assert.Error(t, NewRemoteDevice("x", entity.TemplateFormatRAW).StartAcquisition(context.Background(), nil))
}

func TestRemoteDevice_StopDesarma(t *testing.T) {
	d := NewRemoteDevice("st-1", entity.TemplateFormatRAW)
	called := false
	require.NoError(t, d.StartAcquisition(context.Background(), func([]byte) { called = true }))
	require.NoError(t, d.StopAcquisition(context.Background()))
	require.NoError(t, d.StopAcquisition(context.Background()), "idempotente")

	assert.ErrorIs(t, d.Push([]byte{1}), ErrNotAcquiring)
	assert.False(t, called)
}

func TestRemoteDevice_MuestraInvalidaNoConsumeElHandle(t *testing.T) {
	d := NewRemoteDevice("st-1", entity.TemplateFormatPNG)
	require.NoError(t, d.StartAcquisition(context.Background(), func([]byte) {}))

	assert.ErrorIs(t, d.Push([]byte("basura")), ErrInvalidSample)
	assert.True(t, d.Acquiring())
	assert.NoError(t, d.Push(pngSample(t)))
}

func TestRemoteDevice_Enumerate(t *testing.T) {
	d := NewRemoteDevice("st-1", entity.TemplateFormatBMP)
	ids, err := d.Enumerate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"st-1"}, ids)
	assert.Equal(t, entity.TemplateFormatBMP, d.Format())
}
