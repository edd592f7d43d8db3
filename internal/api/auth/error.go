package auth

import (
	"net/http"

	"IntelliguardGolang/pkg/response"
)

var (
	ErrEmployeeNotFound          = response.NewError(http.StatusNotFound, "employee not found")
	ErrInvalidUsernameOrPassword = response.NewError(http.StatusBadRequest, "invalid username or password")
	ErrEmployeeInactive          = response.NewError(http.StatusForbidden, "employee account is deactivated")
	ErrInvalidRefreshToken       = response.NewError(http.StatusUnauthorized, "invalid refresh token")
	ErrFaceNotRecognized         = response.NewError(http.StatusNotFound, "face not recognized")
	ErrNoFaceInImage             = response.NewError(http.StatusBadRequest, "no face detected in the image")
)
