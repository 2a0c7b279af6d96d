// Package motivation picks the cosmetic messages shown next to progress.
package motivation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/julianstephens/cortisol/internal/constants"
)

var motivationMessages = []string{
	"Remember: lowering your cortisol is how you get your energy back.",
	"Every good habit brings you closer to a clearer mind.",
	"Breathe, walk, sleep: that is your road to calm.",
	"You are moving forward, even slowly. That is what counts.",
	"One day at a time. Your body thanks you.",
}

var encouragements = []string{
	"💪 You can do it!",
	"🌞 A good day starts with a good routine.",
	"🧘 Breathe deeply, you are on the right track.",
	"🔥 Every step buys you more mental clarity.",
	"🌈 You are transforming. Keep going!",
}

// Picker selects messages from an injected random source
type Picker struct {
	rng *rand.Rand
}

// New returns a picker drawing from rng
func New(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

// NewSeeded returns a picker seeded from the current time
func NewSeeded() *Picker {
	seed := uint64(time.Now().UnixNano())
	return New(rand.New(rand.NewPCG(seed, seed>>1|1)))
}

func (p *Picker) pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[p.rng.IntN(len(list))]
}

// Motivation returns one of the motivational reminders
func (p *Picker) Motivation() string {
	return p.pick(motivationMessages)
}

// Encouragement returns one of the short encouragements
func (p *Picker) Encouragement() string {
	return p.pick(encouragements)
}

// PhaseBanner renders the phase heading, e.g. "🌱 Phase 1: Stabilize"
func PhaseBanner(phase constants.Phase) string {
	switch phase {
	case constants.PhaseRebalance:
		return fmt.Sprintf("🌿 Phase 2: %s", phase)
	case constants.PhaseRebuild:
		return fmt.Sprintf("🌳 Phase 3: %s", phase)
	default:
		return fmt.Sprintf("🌱 Phase 1: %s", constants.PhaseStabilize)
	}
}
