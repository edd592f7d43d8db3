package analytics

import (
	"net/http"

	"IntelliguardGolang/pkg/response"
)

var (
	ErrViolationNotFound       = response.NewError(http.StatusNotFound, "violation not found")
	ErrViolationAlreadyClosed  = response.NewError(http.StatusConflict, "violation already resolved")
	ErrInvalidDateRange        = response.NewError(http.StatusBadRequest, "invalid date range")
	ErrNoReportRecipients      = response.NewError(http.StatusUnprocessableEntity, "no report recipients configured")
)
