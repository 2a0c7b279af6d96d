package entries

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/utils"
)

const noteWidth = 40

type HistoryCmd struct {
	Limit int `help:"Show only the most recent N entries (0 for all)." default:"0"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	h, err := ctx.History().Load()
	if err != nil {
		return err
	}
	if len(h) == 0 {
		ctx.Println("No entries yet.")
		return nil
	}

	shown := Newest(h, c.Limit)
	ctx.Println(RenderHistoryTable(shown))
	ctx.Printf("%d of %d entries\n", len(shown), len(h))
	return nil
}

// Newest returns up to limit entries, newest first. A zero limit returns all.
func Newest(h models.History, limit int) models.History {
	n := limitOrAll(limit, len(h))
	out := make(models.History, 0, n)
	for i := len(h) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h[i])
	}
	return out
}

func limitOrAll(limit, total int) int {
	if limit <= 0 || limit > total {
		return total
	}
	return limit
}

// RenderHistoryTable draws the entries as a bordered table
func RenderHistoryTable(h models.History) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Date", "Mood", "Energy", "Anxiety", "Fatigue", "Habits", "Score", "XP", "Recovery", "Note").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, e := range h {
		t.Row(
			utils.FormatDisplayDate(e.Date),
			strconv.Itoa(e.Mood),
			strconv.Itoa(e.Energy),
			strconv.Itoa(e.Anxiety),
			strconv.Itoa(e.Fatigue),
			habitSummary(e.Habits),
			strconv.Itoa(e.Score),
			"+"+strconv.Itoa(e.XP),
			strconv.Itoa(e.Recovery)+"%",
			truncate(e.Note, noteWidth),
		)
	}
	return t.Render()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
