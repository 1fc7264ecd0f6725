package simulator

import (
	"fmt"
	"io"
	"slot_engine/internal/model"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Interval struct {
	Lo float64
	Hi float64
}

// Report итог прогона. RTP и интервал в долях ставки
type Report struct {
	Game   model.Game
	Mode   model.Mode
	Rounds int
	Bet    int64
	Seed   uint64

	TotalBet int64
	TotalWin int64
	BaseWin  int64
	FreeWin  int64

	HitRounds       int
	Triggers        int
	Retriggers      int
	FreeSpinsPlayed int
	MaxWin          int64
	MaxWinX         float64

	RTP     float64
	CI      Interval
	Std     float64
	CV      float64
	HitRate float64

	Elapsed time.Duration
}

func (r *Report) rows() ([]string, map[string]string) {
	p := message.NewPrinter(language.English)
	rows := map[string]string{
		"Game":              p.Sprintf("%s (%s)", r.Game, r.Mode),
		"Seed":              fmt.Sprintf("%d", r.Seed),
		"Rounds":            p.Sprintf("%d", r.Rounds),
		"Bet":               p.Sprintf("%d", r.Bet),
		"Total Bet":         p.Sprintf("%d", r.TotalBet),
		"Total Win":         p.Sprintf("%d", r.TotalWin),
		"Base Win":          p.Sprintf("%d", r.BaseWin),
		"Free Win":          p.Sprintf("%d", r.FreeWin),
		"RTP":               p.Sprintf("%.2f %%", 100*r.RTP),
		"RTP 95% CI":        p.Sprintf("[%.2f%%, %.2f%%]", 100*r.CI.Lo, 100*r.CI.Hi),
		"Hit Rate":          p.Sprintf("%.2f %%", 100*r.HitRate),
		"Triggers":          p.Sprintf("%d", r.Triggers),
		"Retriggers":        p.Sprintf("%d", r.Retriggers),
		"Free Spins Played": p.Sprintf("%d", r.FreeSpinsPlayed),
		"Max Win":           p.Sprintf("%d (x%.1f)", r.MaxWin, r.MaxWinX),
		"STD":               p.Sprintf("%.3f", r.Std),
		"CV":                p.Sprintf("%.3f", r.CV),
		"Elapsed":           r.Elapsed.Round(time.Millisecond).String(),
	}
	keys := []string{
		"Game", "Seed", "Rounds", "Bet", "Total Bet", "Total Win", "Base Win", "Free Win",
		"RTP", "RTP 95% CI", "Hit Rate", "Triggers", "Retriggers", "Free Spins Played",
		"Max Win", "STD", "CV", "Elapsed",
	}
	return keys, rows
}

// WriteTable печатает отчет рамкой из двух колонок
func (r *Report) WriteTable(w io.Writer) error {
	keys, rows := r.rows()
	_, err := io.WriteString(w, table("Simulation", keys, rows))
	return err
}

func table(title string, keys []string, rows map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(rows[k]))
	}
	keyW += 2
	valW += 2

	inner := keyW + valW + 1
	left := max((inner-runewidth.StringWidth(title))/2, 0)

	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	b.WriteString("|" + runewidth.FillRight(strings.Repeat(" ", left)+title, inner) + "|\n")
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"
	b.WriteString(divider)
	for _, k := range keys {
		b.WriteString("| " + runewidth.FillRight(k, keyW-2) + " | " + runewidth.FillRight(rows[k], valW-2) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}
