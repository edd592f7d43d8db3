package employee

import "time"

type CreateEmployeeRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required,max=100"`
	Role       string `json:"role" validate:"required,oneof=admin supervisor employee"`
}

type UpdateEmployeeRequest struct {
	FirstName  string `json:"first_name" validate:"omitempty,max=100"`
	LastName   string `json:"last_name" validate:"omitempty,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Role       string `json:"role" validate:"omitempty,oneof=admin supervisor employee"`
}

type ListEmployeesQuery struct {
	Department string `query:"department"`
	ActiveOnly bool   `query:"active_only"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

type EmployeeResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	Role         string    `json:"role"`
	FaceEnrolled bool      `json:"face_enrolled"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

type EnrollFaceResponse struct {
	EmployeeID     string `json:"employee_id"`
	Username       string `json:"username"`
	EncodingLength int    `json:"encoding_length"`
	RegistrySize   int    `json:"registry_size"`
}
