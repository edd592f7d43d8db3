package employee

import (
	"net/http"

	"IntelliguardGolang/pkg/response"
)

var (
	ErrEmployeeNotFound      = response.NewError(http.StatusNotFound, "employee not found")
	ErrUsernameAlreadyExists = response.NewError(http.StatusConflict, "username already exists")
	ErrEmailAlreadyExists    = response.NewError(http.StatusConflict, "email already in use")
	ErrEmployeeInactive      = response.NewError(http.StatusForbidden, "employee account is deactivated")
	ErrNoFaceInImage         = response.NewError(http.StatusBadRequest, "no face detected in the image")
	ErrMultipleFacesInImage  = response.NewError(http.StatusBadRequest, "multiple faces detected, provide a single-face image")
)
