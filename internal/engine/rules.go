package engine

import (
	"sort"

	"github.com/julianstephens/cortisol/internal/constants"
)

// XPTier awards XP to any score at or above MinScore
type XPTier struct {
	MinScore int
	XP       int
}

// Rules holds the tunable constants of the scoring model
type Rules struct {
	PositiveBonusMin int // mood and energy earn a point at or above this
	NegativeBonusMax int // anxiety and fatigue earn a point at or below this
	XPTiers          []XPTier
	BaseXP           int
	LevelBand        int
	PhaseRebalance   int
	PhaseRebuild     int
}

// DefaultRules returns the thresholds calibrated for the nine default habits
func DefaultRules() Rules {
	return Rules{
		PositiveBonusMin: constants.PositiveBonusMin,
		NegativeBonusMax: constants.NegativeBonusMax,
		XPTiers: []XPTier{
			{MinScore: constants.XPTierHighScore, XP: constants.XPHigh},
			{MinScore: constants.XPTierMidScore, XP: constants.XPMid},
			{MinScore: constants.XPTierLowScore, XP: constants.XPLow},
		},
		BaseXP:         constants.XPBase,
		LevelBand:      constants.LevelBandXP,
		PhaseRebalance: constants.PhaseRebalanceMin,
		PhaseRebuild:   constants.PhaseRebuildMin,
	}
}

// MaxScore is the best score a draft with habitCount habits can reach
func MaxScore(habitCount int) int {
	if habitCount < 0 {
		habitCount = 0
	}
	return habitCount + 4
}

// XPFor maps a score to its XP reward.
// A tier threshold above maxScore is lowered to maxScore so that a perfect day
// always reaches the top tier.
func (r Rules) XPFor(score, maxScore int) int {
	tiers := append([]XPTier(nil), r.XPTiers...)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinScore > tiers[j].MinScore
	})
	for _, tier := range tiers {
		threshold := min(tier.MinScore, maxScore)
		if score >= threshold {
			return tier.XP
		}
	}
	return r.BaseXP
}

// PhaseFor classifies a history by its entry count
func (r Rules) PhaseFor(entries int) constants.Phase {
	switch {
	case entries >= r.PhaseRebuild:
		return constants.PhaseRebuild
	case entries >= r.PhaseRebalance:
		return constants.PhaseRebalance
	default:
		return constants.PhaseStabilize
	}
}

func (r Rules) levelBand() int {
	if r.LevelBand <= 0 {
		return constants.LevelBandXP
	}
	return r.LevelBand
}
