package constants

const (
	// Rating bounds for mood, energy, anxiety and fatigue
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3

	// Rating thresholds that earn a bonus point
	PositiveBonusMin = 4 // mood, energy
	NegativeBonusMax = 2 // anxiety, fatigue

	// XP step function, calibrated against nine habits
	XPTierHighScore = 16
	XPTierMidScore  = 11
	XPTierLowScore  = 6
	XPHigh          = 10
	XPMid           = 7
	XPLow           = 4
	XPBase          = 1

	// Recovery = (mood + energy + (6-anxiety) + (6-fatigue)) * RecoveryMultiplier
	RecoveryInvertBase = 6
	RecoveryMultiplier = 5

	// Progression
	LevelBandXP       = 50
	PhaseRebalanceMin = 20
	PhaseRebuildMin   = 40
)

// HabitDefinition is one of the fixed daily habits
type HabitDefinition struct {
	Name        string
	Description string
}

// DefaultHabits is the static habit list. Entries store completions index-aligned with it.
var DefaultHabits = []HabitDefinition{
	{Name: "Sleep >= 7h30", Description: "Sleep at least 7h30, ideally from 22:00 to 06:30."},
	{Name: "Light exposure", Description: "Get 5 to 10 minutes of natural (or bright) light right after waking."},
	{Name: "Breathing x3", Description: "Do three 5-minute sessions of cardiac coherence breathing."},
	{Name: "Regular meals", Description: "Don't skip meals, have a protein breakfast."},
	{Name: "Screen-free time", Description: "At least 30 minutes without a screen (reading, rest, nature)."},
	{Name: "Walk / light activity", Description: "Walk for at least 20 minutes or do a light movement session."},
	{Name: "Supplements taken", Description: "Take magnesium, ashwagandha or whatever else is planned."},
	{Name: "Hot shower / bath", Description: "Take a hot bath or shower to unwind before bed."},
	{Name: "Gratitude", Description: "Write down 3 positive or rewarding things from your day."},
}
