// Package transport defines the raw wire shapes of the metered property-data
// API. The upstream is loosely typed: numerics arrive as numbers or strings,
// booleans as booleans, numbers, or strings, and any nested object may be
// absent. These types absorb that looseness at the decoding boundary so the
// rest of the system never touches a partially-typed payload.
package transport

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexNumber handles JSON values that arrive as number, numeric string,
// or null. An unparseable value decodes as absent rather than failing the
// whole payload, so "no value" stays distinguishable from zero.
type FlexNumber struct {
	value *float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	f.value = nil

	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return nil
		}
		f.value = &parsed
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return nil
	}
	f.value = &num
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexNumber) MarshalJSON() ([]byte, error) {
	if f.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.value)
}

// Float64Ptr returns the value, or nil when absent.
func (f FlexNumber) Float64Ptr() *float64 {
	if f.value == nil {
		return nil
	}
	v := *f.value
	return &v
}

// IntPtr returns the value truncated to int, or nil when absent.
func (f FlexNumber) IntPtr() *int {
	if f.value == nil {
		return nil
	}
	v := int(*f.value)
	return &v
}

// Number constructs a present FlexNumber, mainly for tests.
func Number(v float64) FlexNumber {
	return FlexNumber{value: &v}
}

// FlexBool handles JSON values that arrive as boolean, 0/1, or a truthy
// string. Absent, null, and unrecognized values decode as false.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	*f = false

	switch string(data) {
	case "null", "false", "0":
		return nil
	case "true", "1":
		*f = true
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "y", "yes":
			*f = true
		}
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return nil
	}
	*f = num != 0
	return nil
}

// Bool returns the underlying boolean.
func (f FlexBool) Bool() bool { return bool(f) }

// FlexString handles JSON values that arrive as string or number; record
// IDs in particular flip between the two across upstream versions.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	*f = ""

	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*f = FlexString(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return nil
	}
	*f = FlexString(num.String())
	return nil
}

// String returns the underlying string.
func (f FlexString) String() string { return string(f) }
