package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
)

type ResponseError struct {
	Message string `json:"message"`
}

func sendErr(_ context.Context, w http.ResponseWriter, code int, _ error, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(ResponseError{Message: msg}); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

func sendJSON(_ context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

var validationErrs = []error{
	entity.ErrValidation,
	entity.ErrMissingField,
	entity.ErrInvalidCPF,
	entity.ErrInvalidCNPJ,
	entity.ErrInvalidNFSLink,
	entity.ErrInvalidStatus,
	entity.ErrPasswordsDiff,
	entity.ErrNoClients,
}

// sendServiceErr maps the service error taxonomy onto HTTP codes. Validation
// and conflict errors carry their pt-BR detail through to the notification
// the UI shows; everything else gets a fixed message.
func sendServiceErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrAuthFailed):
		sendErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgAuthFailed)
	case errors.Is(err, entity.ErrUnauthorized):
		sendErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgUnauthorized)
	case errors.Is(err, entity.ErrForbidden):
		sendErr(ctx, w, http.StatusForbidden, err, entity.ErrMsgForbidden)
	case errors.Is(err, entity.ErrClientLinked):
		sendErr(ctx, w, http.StatusConflict, err, entity.ErrMsgClientLinked)
	case errors.Is(err, entity.ErrClientNotFound),
		errors.Is(err, entity.ErrOrderNotFound),
		errors.Is(err, entity.ErrNotFound):
		sendErr(ctx, w, http.StatusNotFound, err, entity.ErrMsgNotFound)
	case errors.Is(err, entity.ErrInvalidBackup):
		sendErr(ctx, w, http.StatusUnprocessableEntity, err, entity.ErrMsgInvalidBackup)
	case isValidationErr(err):
		sendErr(ctx, w, http.StatusBadRequest, err, getValidationMessage(err))
	case errors.Is(err, entity.ErrPersistence):
		sendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgPersistence)
	default:
		sendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
	}
}

func isValidationErr(err error) bool {
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

func getValidationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}

	return msg
}

func extractTokenFromHeader(r *http.Request) string {
	const bearerParts = 2

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", bearerParts)
	if len(parts) != bearerParts || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}
