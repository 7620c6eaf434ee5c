package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
)

// Completions maps a date key (YYYY-MM-DD) to the number of completions
// recorded that day. A missing key means zero.
type Completions map[string]int

// Clone returns an independent copy of the mapping.
func (c Completions) Clone() Completions {
	if c == nil {
		return Completions{}
	}
	return maps.Clone(c)
}

// rawKind tags a persisted completion value.
type rawKind int

const (
	rawAbsent rawKind = iota
	rawBool
	rawCount
)

// RawCompletion is a completion value as found in persisted data: absent,
// a legacy boolean, or a count.
type RawCompletion struct {
	kind  rawKind
	flag  bool
	count float64
}

// ParseRawCompletion decodes a single persisted JSON completion value.
func ParseRawCompletion(data []byte) (RawCompletion, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return RawCompletion{kind: rawAbsent}, nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return RawCompletion{kind: rawBool, flag: b}, nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return RawCompletion{}, fmt.Errorf("completion value %s is neither boolean nor number", data)
	}
	return RawCompletion{kind: rawCount, count: n}, nil
}

// Count normalizes the raw value: true is 1, false and absent are 0, and
// numbers are rounded and floored at 0.
func (r RawCompletion) Count() int {
	switch r.kind {
	case rawBool:
		if r.flag {
			return 1
		}
		return 0
	case rawCount:
		n := int(math.Round(r.count))
		if n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

func (c *Completions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Completions, len(raw))
	for key, value := range raw {
		rc, err := ParseRawCompletion(value)
		if err != nil {
			return fmt.Errorf("completion %s: %w", key, err)
		}
		if n := rc.Count(); n > 0 {
			out[key] = n
		}
	}
	*c = out
	return nil
}
