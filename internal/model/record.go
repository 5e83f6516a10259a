package model

import "encoding/json"

// Key namespaces used in the key-value store. A record lives under its
// prefix followed by its id.
const (
	UserKeyPrefix       = "user:"
	InvestmentKeyPrefix = "investment:"
)

// UserKey returns the store key for a user id.
func UserKey(id string) string {
	return UserKeyPrefix + id
}

// InvestmentKey returns the store key for an investment id.
func InvestmentKey(id string) string {
	return InvestmentKeyPrefix + id
}

// Extra holds stored fields that the console does not model.
// They are carried through decode and encode unchanged so that a write never
// drops data written by whoever created the record.
type Extra map[string]json.RawMessage

// splitExtra decodes data as a JSON object and returns every member whose name
// is not in known. Returns nil when nothing is left over.
func splitExtra(data []byte, known []string) (Extra, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return Extra(all), nil
}

// mergeExtra encodes v and adds the extra members that v does not set itself.
func mergeExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = raw
		}
	}
	return json.Marshal(fields)
}

func (e Extra) clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
