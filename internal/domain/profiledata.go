package domain

import (
	"encoding/json"
	"strings"
)

// FieldKind discriminates the value shapes allowed in parsed resume data.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldList
	FieldMap
)

// FieldValue is one value in the open resume mapping: a string, an ordered
// list of strings, or a nested string-to-string mapping (e.g. links).
// Numbers and booleans coming back from the parser are folded into strings.
type FieldValue struct {
	Kind FieldKind
	Str  string
	List []string
	Map  map[string]string
}

func StringValue(s string) FieldValue {
	return FieldValue{Kind: FieldString, Str: s}
}

func ListValue(items ...string) FieldValue {
	return FieldValue{Kind: FieldList, List: items}
}

func MapValue(m map[string]string) FieldValue {
	return FieldValue{Kind: FieldMap, Map: m}
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FieldList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	case FieldMap:
		if v.Map == nil {
			return json.Marshal(map[string]string{})
		}
		return json.Marshal(v.Map)
	default:
		return json.Marshal(v.Str)
	}
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = coerceFieldValue(raw)
	return nil
}

func coerceFieldValue(raw any) FieldValue {
	switch t := raw.(type) {
	case nil:
		return StringValue("")
	case string:
		return StringValue(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			items = append(items, coerceScalar(item))
		}
		return ListValue(items...)
	case map[string]any:
		m := make(map[string]string, len(t))
		for k, item := range t {
			m[k] = coerceScalar(item)
		}
		return MapValue(m)
	default:
		return StringValue(coerceScalar(raw))
	}
}

func coerceScalar(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return string(b)
}

// ProfileData is the open-schema mapping extracted from a resume. Keys are
// normalized snake_case field names.
type ProfileData map[string]FieldValue

// NormalizeFieldName produces the canonical key form: trimmed, lowercased,
// internal whitespace joined with underscores.
func NormalizeFieldName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
}

// AddField inserts an empty string value under the normalized name. Existing
// keys are left untouched.
func (d ProfileData) AddField(name string) bool {
	key := NormalizeFieldName(name)
	if key == "" {
		return false
	}
	if _, ok := d[key]; ok {
		return false
	}
	d[key] = StringValue("")
	return true
}

// RemoveField deletes the key if present.
func (d ProfileData) RemoveField(name string) bool {
	if _, ok := d[name]; !ok {
		return false
	}
	delete(d, name)
	return true
}

// AddArrayItem appends value to the list under key. A missing key or a
// non-list value is replaced with a one-element list.
func (d ProfileData) AddArrayItem(key, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if cur, ok := d[key]; ok && cur.Kind == FieldList {
		cur.List = append(cur.List, value)
		d[key] = cur
		return true
	}
	d[key] = ListValue(value)
	return true
}

// RemoveArrayItem removes the list element at index. Non-list values and
// out-of-range indexes are ignored.
func (d ProfileData) RemoveArrayItem(key string, index int) bool {
	cur, ok := d[key]
	if !ok || cur.Kind != FieldList {
		return false
	}
	if index < 0 || index >= len(cur.List) {
		return false
	}
	cur.List = append(cur.List[:index], cur.List[index+1:]...)
	d[key] = cur
	return true
}

// Clone returns a deep copy.
func (d ProfileData) Clone() ProfileData {
	out := make(ProfileData, len(d))
	for k, v := range d {
		switch v.Kind {
		case FieldList:
			items := make([]string, len(v.List))
			copy(items, v.List)
			out[k] = FieldValue{Kind: FieldList, List: items}
		case FieldMap:
			m := make(map[string]string, len(v.Map))
			for mk, mv := range v.Map {
				m[mk] = mv
			}
			out[k] = FieldValue{Kind: FieldMap, Map: m}
		default:
			out[k] = v
		}
	}
	return out
}

// ProfileDraft is the structured profile editor: a raw JSON text buffer kept
// in sync with the last successfully parsed mapping. Typing invalid JSON
// never blocks and never surfaces an error; persistence reads Data(), which
// is always the last valid mapping.
type ProfileDraft struct {
	raw  string
	data ProfileData
}

func NewProfileDraft(data ProfileData) *ProfileDraft {
	if data == nil {
		data = ProfileData{}
	}
	d := &ProfileDraft{data: data}
	d.syncRaw()
	return d
}

// SetRawText records the edited text and re-parses it. On parse failure the
// previous mapping is retained and the invalid text is left as typed.
func (d *ProfileDraft) SetRawText(text string) {
	d.raw = text
	var parsed ProfileData
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return
	}
	if parsed == nil {
		parsed = ProfileData{}
	}
	d.data = parsed
}

// RawText returns the text buffer as last typed, valid or not.
func (d *ProfileDraft) RawText() string {
	return d.raw
}

// Data returns the last successfully parsed mapping.
func (d *ProfileDraft) Data() ProfileData {
	return d.data
}

// Valid reports whether the current text buffer parses as a mapping.
func (d *ProfileDraft) Valid() bool {
	var parsed ProfileData
	return json.Unmarshal([]byte(d.raw), &parsed) == nil
}

// Field operations act on the mapping and refresh the raw text from it,
// discarding any invalid text still sitting in the buffer.

func (d *ProfileDraft) AddField(name string) bool {
	ok := d.data.AddField(name)
	if ok {
		d.syncRaw()
	}
	return ok
}

func (d *ProfileDraft) RemoveField(name string) bool {
	ok := d.data.RemoveField(name)
	if ok {
		d.syncRaw()
	}
	return ok
}

func (d *ProfileDraft) AddArrayItem(key, value string) bool {
	ok := d.data.AddArrayItem(key, value)
	if ok {
		d.syncRaw()
	}
	return ok
}

func (d *ProfileDraft) RemoveArrayItem(key string, index int) bool {
	ok := d.data.RemoveArrayItem(key, index)
	if ok {
		d.syncRaw()
	}
	return ok
}

func (d *ProfileDraft) syncRaw() {
	b, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return
	}
	d.raw = string(b)
}
