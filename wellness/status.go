package wellness

import (
	"fmt"
	"strconv"
)

// StudentStatus is the snapshot of a student's day the prompt is built from.
type StudentStatus struct {
	Schedule     string  `json:"schedule"`
	SleepHours   float64 `json:"sleep_hours"`
	CommuteHours float64 `json:"commute_hours"`
	Mood         string  `json:"mood"`
}

// MockStatus returns the fixed record used by the schedule runner.
func MockStatus() StudentStatus {
	return StudentStatus{
		Schedule:     "9am-12pm Math, 1pm-3pm English",
		SleepHours:   5,
		CommuteHours: 1,
		Mood:         "tired",
	}
}

// IsZero reports whether no field was supplied.
func (s StudentStatus) IsZero() bool {
	return s == StudentStatus{}
}

const promptTemplate = `
You are a personal wellness assistant for college students.
Student data:
- Class schedule: %s
- Sleep: %s hours
- Commute: %s hours
- Mood: %s

Task: Suggest a balanced daily schedule including study, rest, and wellness breaks.
Output in JSON format with keys: "study", "rest", "wellness_breaks".
`

// BuildPrompt renders the status into the schedule prompt. Values are inserted as-is.
func BuildPrompt(s StudentStatus) string {
	return fmt.Sprintf(promptTemplate,
		s.Schedule,
		formatHours(s.SleepHours),
		formatHours(s.CommuteHours),
		s.Mood,
	)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'g', -1, 64)
}
