package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/LtHummus/spyparsey/internal/batch"
	"github.com/LtHummus/spyparsey/spyparty"
)

var ErrNoPlayers = errors.New("table output needs --players or --pair")

type matchup struct {
	opponent string
	games    int
	wins     int
	losses   int
}

// Table prints, for each player, their record as spy and as sniper against every opponent
// they met.
func Table(w io.Writer, replays []batch.MatchedReplay, players []string) error {
	if len(players) == 0 {
		return ErrNoPlayers
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, player := range players {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		for _, role := range []string{spyparty.Spy, spyparty.Sniper} {
			fmt.Fprintf(tw, "%s as %s\n", player, role)
			fmt.Fprintln(tw, "OPPONENT\tGAMES\tWINS\tLOSSES\tWIN%")
			for _, r := range matchups(replays, player, role) {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n", r.opponent, r.games, r.wins, r.losses, winRate(r))
			}
		}
	}
	return tw.Flush()
}

func matchups(replays []batch.MatchedReplay, player, role string) []matchup {
	byOpponent := map[string]*matchup{}
	for _, m := range replays {
		var opponent string
		var won, lost bool
		switch {
		case role == spyparty.Spy && m.HasSpy(player):
			opponent, won, lost = m.SniperName(), m.IsSpyWin(), m.IsSniperWin()
		case role == spyparty.Sniper && m.HasSniper(player):
			opponent, won, lost = m.SpyName(), m.IsSniperWin(), m.IsSpyWin()
		default:
			continue
		}

		r, ok := byOpponent[opponent]
		if !ok {
			r = &matchup{opponent: opponent}
			byOpponent[opponent] = r
		}
		r.games++
		if won {
			r.wins++
		} else if lost {
			r.losses++
		}
	}

	out := make([]matchup, 0, len(byOpponent))
	for _, r := range byOpponent {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].games != out[j].games {
			return out[i].games > out[j].games
		}
		return out[i].opponent < out[j].opponent
	})
	return out
}

func winRate(r matchup) float64 {
	if r.games == 0 {
		return 0
	}
	return float64(r.wins) / float64(r.games) * 100
}
