package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
)

const maxSearchQueryLen = 200

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

// SearchQuery extracts the free-text filter, trimmed and length-capped.
func SearchQuery(r *http.Request, key string) string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if len(raw) > maxSearchQueryLen {
		raw = raw[:maxSearchQueryLen]
	}
	return raw
}
