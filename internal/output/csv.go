package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/LtHummus/spyparsey/internal/batch"
	"github.com/LtHummus/spyparsey/spyparty"
)

var csvHeader = []string{
	"path", "game_id", "start", "spy", "sniper", "map", "mode", "result", "winner",
	"duration", "selected", "picked", "completed",
}

// CSV writes one row per replay. Mission lists are joined with "+" so they stay in one
// column.
func CSV(w io.Writer, replays []batch.MatchedReplay) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, m := range replays {
		r := NewRecord(m)
		row := []string{
			r.Path,
			r.GameID,
			r.Start,
			r.Spy,
			r.Sniper,
			r.Map,
			r.Mode,
			r.Result,
			r.Winner,
			strconv.FormatFloat(float64(r.Duration), 'f', 2, 32),
			strings.Join(r.Selected, "+"),
			strings.Join(r.Picked, "+"),
			strings.Join(r.Completed, "+"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func names(ms spyparty.Missions) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.String())
	}
	return out
}
