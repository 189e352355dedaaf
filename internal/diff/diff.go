// Package diff computes the field-level comparison between the two JSON
// snapshots carried by a pending change. The output is display-oriented:
// each top-level field becomes one row with rendered old/new values and
// a changed flag. Nested values are never diffed recursively; a nested
// change surfaces only as "this field changed".
package diff

import (
	"encoding/json"
	"fmt"
	"sort"

	"oceanlk/internal/logger"
	"oceanlk/internal/models"
)

// EmptyValue is the rendering for a null or absent field value.
const EmptyValue = "(empty)"

// excludedFields are bookkeeping keys stripped from the comparison.
var excludedFields = map[string]bool{
	"id":  true,
	"_id": true,
	"__v": true,
}

// Field is one row of the comparison.
type Field struct {
	Name     string `json:"name"`
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
	Changed  bool   `json:"changed"`
}

// Result is the full comparison for one pending change. HasOld and
// HasNew tell the caller which columns to render: CREATE suppresses
// the old column, DELETE suppresses the new column.
type Result struct {
	Action models.ChangeAction `json:"action"`
	Fields []Field             `json:"fields"`
	HasOld bool                `json:"has_old"`
	HasNew bool                `json:"has_new"`
}

// IsEmpty reports whether no comparable fields remain after exclusions.
// Callers should render a distinct empty-state message rather than an
// empty table.
func (r *Result) IsEmpty() bool {
	return len(r.Fields) == 0
}

// Compute builds the field comparison for a change. Snapshots that are
// nil or fail to parse are treated as empty records; parse failures are
// logged and never returned as errors.
func Compute(action models.ChangeAction, originalData, changeData *string) *Result {
	oldRecord := parseSnapshot(originalData, "original_data")
	newRecord := parseSnapshot(changeData, "change_data")

	result := &Result{
		Action: action,
		HasOld: action != models.ChangeActionCreate,
		HasNew: action != models.ChangeActionDelete,
	}

	for _, name := range fieldOrder(oldRecord, newRecord) {
		if excludedFields[name] {
			continue
		}

		oldVal, hasOld := oldRecord[name]
		newVal, hasNew := newRecord[name]

		changed := false
		if action == models.ChangeActionUpdate {
			changed = canonical(oldVal, hasOld) != canonical(newVal, hasNew)
		}

		field := Field{Name: name, Changed: changed}
		if result.HasOld {
			field.OldValue = render(oldVal, hasOld)
		}
		if result.HasNew {
			field.NewValue = render(newVal, hasNew)
		}
		result.Fields = append(result.Fields, field)
	}

	return result
}

// parseSnapshot decodes one snapshot string into a flat record. Absent
// or malformed snapshots yield an empty record.
func parseSnapshot(data *string, label string) map[string]json.RawMessage {
	if data == nil || *data == "" {
		return map[string]json.RawMessage{}
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal([]byte(*data), &record); err != nil {
		logger.Get().Warnw("unparseable change snapshot, treating as empty",
			"snapshot", label,
			"error", err,
		)
		return map[string]json.RawMessage{}
	}
	if record == nil {
		return map[string]json.RawMessage{}
	}
	return record
}

// fieldOrder returns the union of keys with old-record keys first,
// then new-only keys. Keys within each snapshot are sorted so the same
// two inputs always produce the same row order.
func fieldOrder(oldRecord, newRecord map[string]json.RawMessage) []string {
	seen := make(map[string]bool, len(oldRecord)+len(newRecord))
	var order []string
	appendKeys := func(record map[string]json.RawMessage) {
		keys := make([]string, 0, len(record))
		for k := range record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	appendKeys(oldRecord)
	appendKeys(newRecord)
	return order
}

// canonical returns a canonical serialization of a raw JSON value for
// structural equality checks. Absent values canonicalize to "null", so
// an explicit null and a missing field compare equal.
func canonical(raw json.RawMessage, present bool) string {
	if !present || len(raw) == 0 {
		return "null"
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// render produces the display string for one value.
func render(raw json.RawMessage, present bool) string {
	if !present || len(raw) == 0 {
		return EmptyValue
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}

	switch val := v.(type) {
	case nil:
		return EmptyValue
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case string:
		if val == "" {
			return EmptyValue
		}
		return val
	case float64:
		return formatNumber(val)
	case []interface{}:
		if len(val) == 1 {
			return "1 item"
		}
		return fmt.Sprintf("%d items", len(val))
	case map[string]interface{}:
		return "[object]"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumber renders integers without a trailing ".0" while keeping
// fractional values as-is.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
