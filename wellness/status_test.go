package wellness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptMockStatus(t *testing.T) {
	prompt := BuildPrompt(MockStatus())

	require.Contains(t, prompt, "tired")
	require.Contains(t, prompt, "5 hours")
	require.Contains(t, prompt, "1 hours")
	require.Contains(t, prompt, "9am-12pm Math, 1pm-3pm English")
	require.Contains(t, prompt, `"study", "rest", "wellness_breaks"`)
}

func TestBuildPromptFractionalHours(t *testing.T) {
	prompt := BuildPrompt(StudentStatus{Schedule: "none", SleepHours: 6.5, CommuteHours: 0.25, Mood: "ok"})

	require.Contains(t, prompt, "Sleep: 6.5 hours")
	require.Contains(t, prompt, "Commute: 0.25 hours")
}

func TestBuildPromptDoesNotEscape(t *testing.T) {
	status := MockStatus()
	status.Mood = `"quoted" {braces} %d`

	prompt := BuildPrompt(status)
	require.True(t, strings.Contains(prompt, `Mood: "quoted" {braces} %d`))
}

func TestStudentStatusIsZero(t *testing.T) {
	require.True(t, StudentStatus{}.IsZero())
	require.False(t, MockStatus().IsZero())
}
