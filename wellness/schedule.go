package wellness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidSchedule is returned when model output does not match the schedule shape.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule is the balanced day the model is asked to produce.
type Schedule struct {
	Study          json.RawMessage `json:"study"`
	Rest           json.RawMessage `json:"rest"`
	WellnessBreaks json.RawMessage `json:"wellness_breaks"`
}

const scheduleSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["study", "rest", "wellness_breaks"],
  "additionalProperties": false,
  "properties": {
    "study": {},
    "rest": {},
    "wellness_breaks": {}
  }
}`

var scheduleSchema = jsonschema.MustCompileString("schedule.json", scheduleSchemaJSON)

// ValidateSchedule checks raw JSON against the three-key schedule schema.
func ValidateSchedule(raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("%w: empty json", ErrInvalidSchedule)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: parse json: %v", ErrInvalidSchedule, err)
	}
	if err := scheduleSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return nil
}

// ParseSchedule extracts a schedule from model text, tolerating markdown code fences.
func ParseSchedule(text string) (Schedule, error) {
	content := stripFences(text)
	if err := ValidateSchedule([]byte(content)); err != nil {
		return Schedule{}, err
	}

	var out Schedule
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return Schedule{}, fmt.Errorf("%w: decode: %v", ErrInvalidSchedule, err)
	}
	return out, nil
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}
