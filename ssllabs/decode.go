package ssllabs

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// decodeEntity unmarshals b into v after checking that every required key
// is present and not null, and returns a private copy of b for the entity's
// Raw field.
func decodeEntity(b []byte, v any, entity string, required ...string) (json.RawMessage, error) {
	if len(required) > 0 {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(b, &keys); err != nil {
			return nil, fmt.Errorf("ssllabs: decoding %s: %w", entity, err)
		}
		for _, k := range required {
			if val, ok := keys[k]; !ok || bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
				return nil, &DecodeError{Entity: entity, Field: k}
			}
		}
	}
	if err := json.Unmarshal(b, v); err != nil {
		return nil, fmt.Errorf("ssllabs: decoding %s: %w", entity, err)
	}
	return append(json.RawMessage(nil), b...), nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// optionalMillis converts an optional epoch in milliseconds.
func optionalMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := fromMillis(*ms)
	return &t
}

// HexBytes is a byte string transmitted hex encoded.
type HexBytes []byte

func (h *HexBytes) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	d, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("ssllabs: decoding hex bytes: %w", err)
	}
	*h = d
	return nil
}

// SpaceList is a list transmitted as one space separated string.
type SpaceList []string

func (l *SpaceList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = strings.Fields(s)
	return nil
}

func bitSet(n, k int) bool {
	return (n>>k)&1 == 1
}

func decodeBits(b []byte, entity string) (int, error) {
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return 0, fmt.Errorf("ssllabs: decoding %s: %w", entity, err)
	}
	return n, nil
}
