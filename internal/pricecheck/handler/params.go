package handler

import (
	"fmt"
	"net/http"
	"strings"

	"pricecheck-service/internal/pricecheck/model"
)

// DefaultViewLimit is the filtered view size when no limit is asked for.
const (
	DefaultViewLimit = 100
	maxJSONBody      = 1 << 20
)

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// parseView reads limit (100|200|all) and order (desc|asc) from the query string.
// Missing values default to 100 and desc.
func parseView(r *http.Request) (model.FilterView, error) {
	q := r.URL.Query()
	v := model.FilterView{Limit: DefaultViewLimit}
	switch l := strings.ToLower(strings.TrimSpace(q.Get("limit"))); l {
	case "", "100":
	case "200":
		v.Limit = 200
	case "all":
		v.Limit = 0
	default:
		return v, fmt.Errorf("%w: limit must be 100, 200 or all, got %q", model.ErrPreconditionNotMet, l)
	}
	switch o := strings.ToLower(strings.TrimSpace(q.Get("order"))); o {
	case "", "desc":
	case "asc":
		v.Ascending = true
	default:
		return v, fmt.Errorf("%w: order must be asc or desc, got %q", model.ErrPreconditionNotMet, o)
	}
	return v, nil
}

// cleanValues trims each value and drops blanks. Values are never split:
// category names may contain commas.
func cleanValues(vals []string) []string {
	out := []string{}
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
