package wellness

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// FormInt is an integer form field. Browsers post input values as strings, so it
// accepts a JSON number or a string with a leading integer ("7.5" and "7 hrs" are 7).
// Fractional numbers truncate toward zero.
type FormInt int

func (n *FormInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := parseLeadingInt(s)
		if err != nil {
			return err
		}
		*n = FormInt(v)
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return fmt.Errorf("form int: not a number: %s", raw)
	}
	*n = FormInt(math.Trunc(f))
	return nil
}

// Int returns the value, or 0 for a nil field.
func (n *FormInt) Int() int {
	if n == nil {
		return 0
	}
	return int(*n)
}

func parseLeadingInt(s string) (int, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("form int: no leading integer in %q", s)
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("form int: %w", err)
	}
	return v, nil
}
