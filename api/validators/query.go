package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// RequireQueryString reads a mandatory query parameter, mirroring the
// "Email is required" style failures on the profile endpoints.
func RequireQueryString(r *http.Request, key, message string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}
