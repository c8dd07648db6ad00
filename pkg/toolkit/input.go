package toolkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidInput = errors.New("invalid tool input")

// decodeInput fills target from a JSON object. Single-argument tools pass
// bare so that a plain (or JSON-quoted) string is accepted as well.
func decodeInput(input string, target any, bare func(string)) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), target); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil
	}

	if bare == nil {
		return fmt.Errorf("%w: expected a JSON object", ErrInvalidInput)
	}

	if strings.HasPrefix(trimmed, `"`) {
		var unquoted string
		if err := json.Unmarshal([]byte(trimmed), &unquoted); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		trimmed = strings.TrimSpace(unquoted)
	}
	bare(trimmed)
	return nil
}

// hbarAmount accepts 1.5, "1.5" and "1.5 hbar".
type hbarAmount float64

func (a *hbarAmount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		raw = strings.TrimSpace(text)
		lowered := strings.ToLower(raw)
		for _, suffix := range []string{"hbars", "hbar", "ℏ"} {
			if strings.HasSuffix(lowered, suffix) {
				raw = strings.TrimSpace(raw[:len(raw)-len(suffix)])
				break
			}
		}
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("amount %s is not a number", string(data))
	}
	*a = hbarAmount(value)
	return nil
}
