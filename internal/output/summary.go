package output

import (
	"fmt"
	"io"

	"github.com/LtHummus/spyparsey/internal/summary"
)

// mission sets past this are noise
const maxMissionSets = 10

// Summary prints the summary the way people read it in a terminal.
func Summary(w io.Writer, s *summary.Summary) error {
	p := &printer{w: w}

	p.printf("Total Replays:\n    %d\n", s.Total)

	if s.Players != nil {
		p.printf("Player Stats:\n")
		for _, ps := range s.Players {
			p.printf("    %s: %dW %dL (%.1f%%)\n", ps.Name, ps.Wins, ps.Losses, ps.Percent)
		}
	}
	if s.Maps != nil {
		p.counts("Maps Played", s.Maps, len(s.Maps))
	}

	p.printf("Missions Completed:\n")
	for _, m := range s.Missions {
		p.printf("    %s: %d/%d (%.1f%%)\n", m.Mission, m.Completed, m.Selected, m.Percent)
	}

	p.printf("Completed Mission Sets:\n")
	for i, ms := range s.MissionSets {
		if i == maxMissionSets {
			break
		}
		p.printf("    %s: %d (%.1f%%)\n", ms.Name(), ms.Count, ms.Percent)
	}

	if s.Modes != nil {
		p.counts("Game Modes", s.Modes, len(s.Modes))
	}
	if s.Results != nil {
		p.counts("Results", s.Results, len(s.Results))
	}

	p.printf("Clock:\n")
	p.printf("    Average Duration: %.1fs\n", s.Clock.AverageDuration)
	if s.Clock.Games > 0 {
		p.printf("    Average Clock: %.1fs\n", s.Clock.AverageClock)
		p.printf("    Clock Used: %.1f%%\n", s.Clock.Usage)
	}

	return p.err
}

// printer remembers the first write error so Summary can check it once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) counts(title string, counts []summary.Count, limit int) {
	p.printf("%s:\n", title)
	for i, c := range counts {
		if i == limit {
			break
		}
		p.printf("    %s: %d (%.1f%%)\n", c.Name, c.Count, c.Percent)
	}
}
