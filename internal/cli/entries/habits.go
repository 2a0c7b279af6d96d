package entries

import "github.com/julianstephens/cortisol/internal/cli"

type HabitsCmd struct{}

func (c *HabitsCmd) Run(ctx *cli.Context) error {
	habits := ctx.GetEngine().Habits
	ctx.Printf("Daily habits (%d):\n\n", len(habits))
	for i, h := range habits {
		ctx.Printf("  %d. %s\n", i+1, h.Name)
		ctx.Printf("     %s\n", h.Description)
	}
	ctx.Println("\nLog a habit with 'cortisol log -H <number or name>'.")
	return nil
}
