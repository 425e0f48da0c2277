package entity

import "time"

// User dueño de una tienda. Es dueño de sus productos y ventas.
type User struct {
	ID           string
	Name         string
	StoreName    string
	Email        string    // único
	PasswordHash string    // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
