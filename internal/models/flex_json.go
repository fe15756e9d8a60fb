package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// fieldMaps caches JSON tag -> struct field index mappings per type.
var fieldMaps sync.Map

func jsonFieldMap(t reflect.Type) map[string]int {
	if m, ok := fieldMaps.Load(t); ok {
		return m.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		m[name] = i
	}
	fieldMaps.Store(t, m)
	return m
}

// UnmarshalJSON implements flexible unmarshaling that accepts both
// string-encoded and native JSON types. Replay exporters disagree on
// encodings (result as 0/1 or true/false, tags as bare numbers); this
// coerces each field to its declared Go type and canonicalizes result.
func (p *ParticipantEntry) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias ParticipantEntry
	a := (*Alias)(p)

	if err := json.Unmarshal(data, a); err != nil {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("participant entry: %w", err)
		}
		flexAssign(reflect.ValueOf(a).Elem(), raw)
	}

	p.Result = ParseResult(string(p.Result))
	return nil
}

// UnmarshalJSON accepts start_time as RFC3339, as epoch seconds, or as a
// string-encoded number. Participant entries coerce individually through
// ParticipantEntry.UnmarshalJSON on both paths.
func (u *MatchUpload) UnmarshalJSON(data []byte) error {
	type Alias MatchUpload
	a := (*Alias)(u)

	// Fast path: try standard unmarshal (works when all types match natively)
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("match upload: %w", err)
	}

	if rawTime, ok := raw["start_time"]; ok {
		if t, ok := parseFlexTime(rawTime); ok {
			u.StartTime = t
		}
		delete(raw, "start_time")
	}
	if rawParts, ok := raw["participants"]; ok {
		if err := json.Unmarshal(rawParts, &u.Participants); err == nil {
			delete(raw, "participants")
		}
	}
	flexAssign(reflect.ValueOf(a).Elem(), raw)
	return nil
}

// flexAssign fills struct fields from raw JSON values, falling back to
// string-to-native coercion when a direct unmarshal fails.
func flexAssign(v reflect.Value, raw map[string]json.RawMessage) {
	fieldMap := jsonFieldMap(v.Type())

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		// Try direct unmarshal first
		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Value is a JSON string but target is numeric/bool — coerce
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var s string
			if err := json.Unmarshal(rawVal, &s); err != nil {
				continue
			}
			if s == "" {
				continue
			}
			coerceStringToField(fv, s)
			continue
		}

		// Unquoted value for a string-kinded field: keep the literal text
		if fv.Kind() == reflect.String {
			fv.SetString(string(rawVal))
		}
	}
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetFloat(n)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// ParseFloat handles "28.5" → truncate to int
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetInt(int64(n))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseFloat(s, 64); err == nil && n >= 0 {
			fv.SetUint(uint64(n))
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(s); err == nil {
			fv.SetBool(b)
		}
	case reflect.String:
		fv.SetString(s)
	}
}

func parseFlexTime(raw json.RawMessage) (time.Time, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epochTime(f), true
		}
		return time.Time{}, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return epochTime(f), true
	}
	return time.Time{}, false
}

// epochTime interprets a numeric timestamp as Unix seconds.
func epochTime(f float64) time.Time {
	sec := int64(f)
	nsec := int64((f - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}
