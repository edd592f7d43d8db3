package detection

import (
	"net/http"

	"IntelliguardGolang/pkg/response"
)

var (
	ErrDetectionNotFound    = response.NewError(http.StatusNotFound, "detection not found")
	ErrInferenceUnavailable = response.NewError(http.StatusServiceUnavailable, "inference service unavailable")
	ErrInvalidFrame         = response.NewError(http.StatusBadRequest, "frame could not be decoded")
	ErrNoFaceInImage        = response.NewError(http.StatusBadRequest, "no face detected in the image")
	ErrFaceNotRecognized    = response.NewError(http.StatusNotFound, "face not recognized")
	ErrInternalServerError  = response.NewError(http.StatusInternalServerError, "internal server error")
)
