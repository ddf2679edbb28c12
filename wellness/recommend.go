package wellness

import (
	"math/rand"
	"strings"
)

// MaxTips caps how many tips a single recommendation carries.
const MaxTips = 3

// RecommendInput mirrors the check-in form. Pointer fields are required; nil means missing.
type RecommendInput struct {
	UserID     string   `json:"user_id"`
	Hour       *FormInt `json:"hour"`
	ClassHours *FormInt `json:"class_hours"`
	WorkHours  *FormInt `json:"work_hours"`
	Commute    *FormInt `json:"commute"`
	Sleep      *FormInt `json:"sleep"`
	Stress     *FormInt `json:"stress"`
	Mood       string   `json:"mood"`
}

// Complete reports whether every required field was supplied.
func (in RecommendInput) Complete() bool {
	for _, v := range []*FormInt{in.Hour, in.ClassHours, in.WorkHours, in.Commute, in.Sleep, in.Stress} {
		if v == nil {
			return false
		}
	}
	return true
}

// Recommendation is the scored outcome of a check-in.
type Recommendation struct {
	Tips      []string `json:"tips"`
	Text      string   `json:"recommendation"`
	Focus     int      `json:"focus"`
	Fatigue   int      `json:"fatigue"`
	Workload  int      `json:"workload"`
	TimeOfDay string   `json:"time_of_day"`
}

const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
)

const (
	tipSleepDeprived = "😴 You seem sleep-deprived — aim for at least 7 hours tonight."
	tipOversleep     = "🌅 Too much rest may cause sluggishness — try waking up earlier."
	tipHeavyLoad     = "📘 Heavy schedule — divide study and work into 45-min focus blocks."
	tipLightLoad     = "🪄 Light day — use free time for reflection or creative projects."
	tipHighStress    = "🧘 High stress detected. Try a 5-minute breathing or stretching break."
	tipLowStress     = "🌿 Balanced mindset — keep your calm rhythm going!"
	tipLowMood       = "🎧 Listen to uplifting music or take a short walk outside."
	tipHappy         = "⚡ Great energy! Channel it toward your most creative goals today."
	tipNeutral       = "🔄 Neutral mood — perfect for consistent, steady progress."
	tipMorning       = "🌞 Start your morning with hydration and light stretching."
	tipAfternoon     = "☕ Afternoon slump incoming — move around for 2 minutes to recharge."
	tipEvening       = "🌙 Evening time — slow down, reflect, and plan for tomorrow."
)

// TimeOfDay buckets an hour of the day.
func TimeOfDay(hour int) string {
	switch {
	case hour < 12:
		return TimeMorning
	case hour < 18:
		return TimeAfternoon
	default:
		return TimeEvening
	}
}

// Recommend scores a complete input and picks up to MaxTips tips in rng order.
// The caller must check Complete first.
func Recommend(in RecommendInput, rng *rand.Rand) Recommendation {
	sleep, stress := in.Sleep.Int(), in.Stress.Int()
	workload := in.ClassHours.Int() + in.WorkHours.Int() + in.Commute.Int()
	fatigue := stress*2 + workload - sleep
	focus := 10 - fatigue
	if focus < 0 {
		focus = 0
	}
	tod := TimeOfDay(in.Hour.Int())

	tips := candidateTips(sleep, workload, stress, normalizeMood(in.Mood), tod)
	if rng != nil {
		rng.Shuffle(len(tips), func(i, j int) { tips[i], tips[j] = tips[j], tips[i] })
	}
	if len(tips) > MaxTips {
		tips = tips[:MaxTips]
	}

	return Recommendation{
		Tips:      tips,
		Text:      strings.Join(tips, " "),
		Focus:     focus,
		Fatigue:   fatigue,
		Workload:  workload,
		TimeOfDay: tod,
	}
}

func candidateTips(sleep, workload, stress int, mood, tod string) []string {
	tips := make([]string, 0, 5)

	switch {
	case sleep < 6:
		tips = append(tips, tipSleepDeprived)
	case sleep > 9:
		tips = append(tips, tipOversleep)
	}

	switch {
	case workload >= 8:
		tips = append(tips, tipHeavyLoad)
	case workload <= 3:
		tips = append(tips, tipLightLoad)
	}

	switch {
	case stress >= 4:
		tips = append(tips, tipHighStress)
	case stress <= 2:
		tips = append(tips, tipLowStress)
	}

	switch {
	case strings.Contains(mood, "tired"), strings.Contains(mood, "sad"):
		tips = append(tips, tipLowMood)
	case strings.Contains(mood, "happy"):
		tips = append(tips, tipHappy)
	default:
		tips = append(tips, tipNeutral)
	}

	switch tod {
	case TimeMorning:
		tips = append(tips, tipMorning)
	case TimeAfternoon:
		tips = append(tips, tipAfternoon)
	default:
		tips = append(tips, tipEvening)
	}

	return tips
}

func normalizeMood(mood string) string {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" {
		return "neutral"
	}
	return mood
}
