package docstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Bookkeeping keys. FieldID is set on every decoded record; neither key is
// ever written back. FieldLegacyID only shows up in documents written by
// older clients.
const (
	FieldID       = "id"
	FieldLegacyID = "_id"
)

// Record is the open native form of a document. It is confined to the store
// layer; repositories convert it into typed entities.
type Record map[string]any

// ID returns the identifier derived from the resource name.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Document is the wire form of a stored document.
type Document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]Value `json:"fields,omitempty"`
	CreateTime *time.Time       `json:"createTime,omitempty"`
	UpdateTime *time.Time       `json:"updateTime,omitempty"`
}

// DocumentID returns the last segment of the resource name.
func DocumentID(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ToRecord decodes a wire document. The id always comes from the resource
// name; an id inside the field map is overwritten and a stale "_id" is
// dropped. A document without a field map yields nil.
func ToRecord(doc *Document) Record {
	if doc == nil || doc.Fields == nil {
		return nil
	}
	rec := make(Record, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		if k == FieldLegacyID {
			continue
		}
		rec[k] = Decode(v)
	}
	rec[FieldID] = DocumentID(doc.Name)
	return rec
}

// EncodeFields converts a record into a wire field map, skipping bookkeeping keys.
func EncodeFields(rec Record) (map[string]Value, error) {
	fields := make(map[string]Value, len(rec))
	for k, raw := range rec {
		if k == FieldID || k == FieldLegacyID {
			continue
		}
		v, err := Encode(raw)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", k, err)
		}
		fields[k] = v
	}
	return fields, nil
}

// String returns the string at key, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns the boolean at key, or false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Int returns the number at key as int64. Doubles are truncated.
func (r Record) Int(key string) int64 {
	switch n := r[key].(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

// Time returns the timestamp at key. RFC 3339 strings are accepted for
// documents written by older clients.
func (r Record) Time(key string) time.Time {
	switch t := r[key].(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// TimePtr is Time with nil for a missing or null value.
func (r Record) TimePtr(key string) *time.Time {
	t := r.Time(key)
	if t.IsZero() {
		return nil
	}
	return &t
}

// Strings returns the string items of the array at key, skipping others.
func (r Record) Strings(key string) []string {
	items, _ := r[key].([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Records returns the map items of the array at key, skipping others.
func (r Record) Records(key string) []Record {
	items, _ := r[key].([]any)
	out := make([]Record, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Bools returns the boolean entries of the map at key, skipping others.
func (r Record) Bools(key string) map[string]bool {
	m, _ := r[key].(map[string]any)
	out := make(map[string]bool, len(m))
	for k, v := range m {
		if b, ok := v.(bool); ok {
			out[k] = b
		}
	}
	return out
}
