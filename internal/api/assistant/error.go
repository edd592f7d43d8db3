package assistant

import (
	"net/http"

	"IntelliguardGolang/pkg/response"
)

var (
	ErrUnsafeQuery          = response.NewError(http.StatusUnprocessableEntity, "generated query is not a read-only select")
	ErrAssistantUnavailable = response.NewError(http.StatusServiceUnavailable, "assistant unavailable")
)
