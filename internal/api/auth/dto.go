package auth

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshRequest struct {
	EmployeeID   string `json:"employee_id" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	ExpiresAt    int64           `json:"expires_at"`
	RefreshToken string          `json:"refresh_token"`
	Employee     EmployeeSummary `json:"employee"`
}

type EmployeeSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

type FaceLoginResponse struct {
	TokenResponse
	MatchConfidence float64 `json:"match_confidence"`
}
