package models

const (
	MoodHappy     = "happy"
	MoodSad       = "sad"
	MoodAngry     = "angry"
	MoodAnxious   = "anxious"
	MoodTired     = "tired"
	MoodEnergetic = "energetic"
	MoodOkay      = "okay"
)

var validMoods = map[string]struct{}{
	MoodHappy:     {},
	MoodSad:       {},
	MoodAngry:     {},
	MoodAnxious:   {},
	MoodTired:     {},
	MoodEnergetic: {},
	MoodOkay:      {},
}

func IsValidMood(mood string) bool {
	_, ok := validMoods[mood]
	return ok
}

// MoodRecord holds the daily wellbeing entry. Weight and Temp are
// optional measurements; nil means the value was never entered, which
// is distinct from zero.
type MoodRecord struct {
	Mood     string   `json:"mood"`
	Sleep    string   `json:"sleep"`
	Weight   *float64 `json:"weight,omitempty"`
	Temp     *float64 `json:"temp,omitempty"`
	Symptoms []string `json:"symptoms"`
}

type MoodLog map[string]MoodRecord
