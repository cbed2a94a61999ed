package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/PivnoyFei/webtronics-social-networking/internal/service"
)

// logServiceError records server faults; tagged client failures only show up
// at debug level.
func logServiceError(r *http.Request, logger *slog.Logger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) && svcErr.Kind != service.KindInternal {
		logger.DebugContext(r.Context(), "request rejected", "path", r.URL.Path, "reason", svcErr.Message)
		return
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
}

func uintURLParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
