package models

import "github.com/julianstephens/cortisol/internal/constants"

// RatingField names one of the four daily self-assessments
type RatingField string

const (
	RatingMood    RatingField = "mood"
	RatingEnergy  RatingField = "energy"
	RatingAnxiety RatingField = "anxiety"
	RatingFatigue RatingField = "fatigue"
)

// RatingFields lists the rating fields in display order
var RatingFields = []RatingField{RatingMood, RatingEnergy, RatingAnxiety, RatingFatigue}

// Label returns the human readable name of the field
func (f RatingField) Label() string {
	switch f {
	case RatingMood:
		return "Mood"
	case RatingEnergy:
		return "Energy"
	case RatingAnxiety:
		return "Anxiety"
	case RatingFatigue:
		return "Fatigue"
	default:
		return string(f)
	}
}

// Inverted reports whether a low value is the good end of the scale
func (f RatingField) Inverted() bool {
	return f == RatingAnxiety || f == RatingFatigue
}

// ClampRating forces v into the valid rating range
func ClampRating(v int) int {
	if v < constants.MinRating {
		return constants.MinRating
	}
	if v > constants.MaxRating {
		return constants.MaxRating
	}
	return v
}
