package dto

import "github.com/jhoicas/meustock-api/internal/domain"

// Page paginación normalizada para listados.
type Page struct {
	Limit  int
	Offset int
}

// NewPage aplica valores por defecto y límites (1..100, offset >= 0).
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// Envelope cuerpo uniforme de todas las respuestas JSON.
type Envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Token   string              `json:"token,omitempty"`
}

// OK envelope de éxito con datos.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail envelope de error genérico.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
