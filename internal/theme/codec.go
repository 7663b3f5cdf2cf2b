// internal/theme/codec.go
package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Older backends occasionally persisted theme blobs wrapped in a second
// JSON string encoding. The decoder tolerates a bounded number of wraps;
// the encoder always emits exactly one.
const maxEncodingDepth = 3

var ErrEmptyConfig = errors.New("theme config is empty")

// DecodeConfig parses a persisted themeConfig blob into a Partial layer.
// Callers treat any error as "layer absent": log it, keep the other layers.
func DecodeConfig(raw string) (*Partial, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEmptyConfig
	}

	payload := []byte(trimmed)
	for i := 0; i < maxEncodingDepth; i++ {
		var inner string
		if err := json.Unmarshal(payload, &inner); err != nil {
			break
		}
		payload = []byte(inner)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("theme config is not a JSON object: %w", err)
	}
	if probe == nil {
		return nil, errors.New("theme config is null")
	}

	var p Partial
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode theme config: %w", err)
	}
	return &p, nil
}

// EncodeConfig serializes a layer for persistence, single-encoded.
func EncodeConfig(p *Partial) (string, error) {
	if p == nil {
		return "", errors.New("nil theme config")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode theme config: %w", err)
	}
	return string(data), nil
}
