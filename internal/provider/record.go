package provider

import (
	"encoding/json"
)

// Record is a single provider entry. The raw object is kept so that every
// field survives filtering unchanged.
type Record struct {
	raw    json.RawMessage
	url    string
	hasURL bool
}

// NewRecord wraps a raw JSON object. The url field is extracted when it is
// present and a string; any other shape leaves the record without a URL.
func NewRecord(raw json.RawMessage) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Record{}, err
	}
	if fields == nil {
		return Record{}, ErrInvalidFormat
	}

	r := Record{raw: raw}

	if value, ok := fields["url"]; ok {
		var u string
		if err := json.Unmarshal(value, &u); err == nil {
			r.url = u
			r.hasURL = true
		}
	}

	return r, nil
}

// URL returns the record's url and whether it is usable for probing.
func (r Record) URL() (string, bool) {
	return r.url, r.hasURL && r.url != ""
}

// Raw returns the record's original JSON object.
func (r Record) Raw() json.RawMessage {
	return r.raw
}

// MarshalJSON emits the original object.
func (r Record) MarshalJSON() ([]byte, error) {
	return r.raw, nil
}
