package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PivnoyFei/webtronics-social-networking/internal/service"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Detail writes the {"detail": ...} failure body used everywhere except
// signup conflicts.
func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"detail": msg})
}

// Message writes the {"message": ...} body the signup conflicts use.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// FromError maps a tagged service failure to its status code and body shape.
// Anything untagged is a server fault and stays opaque to the client.
func FromError(w http.ResponseWriter, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		Detail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	switch svcErr.Kind {
	case service.KindBadRequest:
		Detail(w, http.StatusBadRequest, svcErr.Message)
	case service.KindValidation:
		Detail(w, http.StatusUnprocessableEntity, svcErr.Message)
	case service.KindUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
		Detail(w, http.StatusUnauthorized, svcErr.Message)
	case service.KindForbidden:
		Detail(w, http.StatusForbidden, svcErr.Message)
	case service.KindNotFound:
		Detail(w, http.StatusNotFound, svcErr.Message)
	case service.KindConflict:
		Message(w, http.StatusBadRequest, svcErr.Message)
	default:
		Detail(w, http.StatusInternalServerError, "Internal server error")
	}
}
