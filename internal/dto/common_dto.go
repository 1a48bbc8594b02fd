package dto

import (
	"bytes"
	"encoding/json"
)

// NullableFloat distinguishes an absent JSON field from an explicit null.
type NullableFloat struct {
	Set   bool
	Value *float64
}

// UnmarshalJSON records that the field was present and decodes a number or null.
func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}

// MarshalJSON renders the value or null.
func (n NullableFloat) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// SuccessResponse is returned by mutations that have no resource to echo back.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// OKResponse is returned by the public password-reset endpoints.
type OKResponse struct {
	OK bool `json:"ok"`
}
