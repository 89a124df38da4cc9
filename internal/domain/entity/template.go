package entity

import (
	"bytes"
	"time"
)

// TemplateFormat codificación de la muestra entregada por el lector. Solo metadato.
type TemplateFormat string

// Formatos de plantilla soportados.
const (
	TemplateFormatPNG TemplateFormat = "PNG"
	TemplateFormatBMP TemplateFormat = "BMP"
	TemplateFormatRAW TemplateFormat = "RAW"
)

// Valid informa si el formato es uno de los conocidos.
func (f TemplateFormat) Valid() bool {
	switch f {
	case TemplateFormatPNG, TemplateFormatBMP, TemplateFormatRAW:
		return true
	}
	return false
}

// Template muestra biométrica capturada. Inmutable: Raw es una copia propia y no debe modificarse.
type Template struct {
	Format     TemplateFormat
	Raw        []byte
	CapturedAt time.Time
}

// NewTemplate construye una plantilla copiando los bytes de la muestra.
func NewTemplate(format TemplateFormat, raw []byte, capturedAt time.Time) Template {
	return Template{
		Format:     format,
		Raw:        bytes.Clone(raw),
		CapturedAt: capturedAt,
	}
}

// Empty informa si la plantilla no tiene carga comparable.
func (t Template) Empty() bool { return len(t.Raw) == 0 }

// SameRaw compara byte a byte la carga de dos plantillas.
func (t Template) SameRaw(other Template) bool {
	return bytes.Equal(t.Raw, other.Raw)
}
