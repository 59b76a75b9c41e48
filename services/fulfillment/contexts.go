package fulfillment

import (
	"strconv"
	"strings"

	"dinebot/models"
)

// contextName builds the platform context name for a stage.
func contextName(session, stage string) string {
	return session + "/contexts/" + stage
}

// findContext returns the first inbound context whose name carries the
// given stage suffix, or nil. The caller echoes contexts in order, and
// at most one context per stage is expected per turn.
func findContext(contexts []models.WebhookContext, stage string) *models.WebhookContext {
	suffix := "/contexts/" + stage
	for i := range contexts {
		if strings.HasSuffix(contexts[i].Name, suffix) {
			return &contexts[i]
		}
	}
	return nil
}

// ctxParam reads a parameter off a context, tolerating a nil context
// and a nil parameter map.
func ctxParam(c *models.WebhookContext, key string) any {
	if c == nil || c.Parameters == nil {
		return nil
	}
	return c.Parameters[key]
}

// firstString normalizes a parameter that may arrive as a scalar or as
// a single-element array down to one string. Absent or unusable values
// become "".
func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		if len(t) > 0 {
			return firstString(t[0])
		}
	case []string:
		if len(t) > 0 {
			return strings.TrimSpace(t[0])
		}
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

// firstNumber normalizes a scalar-or-array numeric parameter. JSON
// numbers arrive as float64; callers may also have stored Go ints when
// a response round-trips in-process.
func firstNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return n, true
		}
	case []any:
		if len(t) > 0 {
			return firstNumber(t[0])
		}
	}
	return 0, false
}

// firstInt is firstNumber truncated to an int; 0 when absent.
func firstInt(v any) int {
	n, ok := firstNumber(v)
	if !ok {
		return 0
	}
	return int(n)
}

// cartItems decodes a cart parameter back into items. The cart is
// stored as a context parameter, so after a round trip through the
// platform it arrives as []any of map[string]any; in-process it may
// still be []models.CartItem. Unreadable lines are skipped.
func cartItems(v any) []models.CartItem {
	switch t := v.(type) {
	case []models.CartItem:
		return t
	case []any:
		var items []models.CartItem
		for _, raw := range t {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name := firstString(m["dishName"])
			if name == "" {
				name = firstString(m["dishname"])
			}
			qty := firstInt(m["quantity"])
			if name == "" || qty <= 0 {
				continue
			}
			items = append(items, models.CartItem{DishName: name, Quantity: qty})
		}
		return items
	}
	return nil
}
