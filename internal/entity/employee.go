package entity

import "time"

type Employee struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	Department   string    `db:"department"`
	Role         string    `db:"role"`
	FaceEncoding string    `db:"face_encoding"` // JSON-encoded embedding vector
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type EmployeeLoginData struct {
	ID       string
	Username string
	Email    string
	Role     string
}
