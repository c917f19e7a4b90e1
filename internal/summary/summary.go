package summary

import (
	"sort"

	"github.com/LtHummus/spyparsey/internal/config"
	"github.com/LtHummus/spyparsey/spyparty"
)

// Count is how often one value came up, e.g. a map.
type Count struct {
	Name    string  `json:"name" yaml:"name"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

type PlayerStat struct {
	Name    string  `json:"name" yaml:"name"`
	Games   int     `json:"games" yaml:"games"`
	Wins    int     `json:"wins" yaml:"wins"`
	Losses  int     `json:"losses" yaml:"losses"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// MissionStat tracks how often a mission was done out of the games it was selected in.
type MissionStat struct {
	Mission   spyparty.Mission `json:"mission" yaml:"mission"`
	Selected  int              `json:"selected" yaml:"selected"`
	Completed int              `json:"completed" yaml:"completed"`
	Percent   float64          `json:"percent" yaml:"percent"`
}

// MissionSet is how often one exact combination of completed missions won or ended a
// game on the countdown. Missions is the completed missions word as the game stored it.
type MissionSet struct {
	Missions uint32  `json:"missions" yaml:"missions"`
	Count    int     `json:"count" yaml:"count"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// Name is the short form of the missions in the set, e.g. "Bug+BB".
func (m MissionSet) Name() string {
	return spyparty.UnpackMissions(m.Missions).ShortString()
}

type ClockStat struct {
	// AverageDuration is in seconds.
	AverageDuration float64 `json:"average_duration" yaml:"average_duration"`
	// AverageClock only covers replays that record the starting clock.
	AverageClock float64 `json:"average_clock" yaml:"average_clock"`
	// Usage is the average share of the starting clock that was used up.
	Usage float64 `json:"usage" yaml:"usage"`
	Games int     `json:"games" yaml:"games"`
}

// Summary is the aggregate of a set of replays. Sections that would only repeat a filter
// (say, maps when filtering by map) are left nil.
type Summary struct {
	Total       int           `json:"total" yaml:"total"`
	Players     []PlayerStat  `json:"players,omitempty" yaml:"players,omitempty"`
	Maps        []Count       `json:"maps,omitempty" yaml:"maps,omitempty"`
	Missions    []MissionStat `json:"missions" yaml:"missions"`
	MissionSets []MissionSet  `json:"mission_sets" yaml:"mission_sets"`
	Modes       []Count       `json:"modes,omitempty" yaml:"modes,omitempty"`
	Results     []Count       `json:"results,omitempty" yaml:"results,omitempty"`
	Clock       ClockStat     `json:"clock" yaml:"clock"`
}

// Collect builds a Summary. The filters decide which sections are worth showing and whose
// player stats are wanted.
func Collect(replays []*spyparty.Replay, f config.Filters) *Summary {
	s := &Summary{Total: len(replays)}

	if f.UsesPlayerFilters() {
		s.Players = players(replays, f)
	}
	if len(f.Maps) == 0 {
		s.Maps = counts(replays, func(r *spyparty.Replay) (string, bool) {
			return r.Header.Result.Map.String(), true
		})
	}
	s.Missions = missions(replays)
	s.MissionSets = missionSets(replays)
	if len(f.Modes) == 0 {
		s.Modes = counts(replays, func(r *spyparty.Replay) (string, bool) {
			return r.Header.Result.GameMode.String(), true
		})
	}
	if len(f.Results) == 0 {
		s.Results = counts(replays, func(r *spyparty.Replay) (string, bool) {
			return r.Header.Result.GameResult.String(), true
		})
	}
	s.Clock = clock(replays)

	return s
}

// counts tallies the key of every replay for which key says ok. Percentages are of the
// replays counted, highest count first.
func counts(replays []*spyparty.Replay, key func(*spyparty.Replay) (string, bool)) []Count {
	tally := map[string]int{}
	total := 0
	for _, r := range replays {
		name, ok := key(r)
		if !ok {
			continue
		}
		tally[name]++
		total++
	}

	out := make([]Count, 0, len(tally))
	for name, n := range tally {
		out = append(out, Count{Name: name, Count: n, Percent: percent(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// missionSets only looks at games that reached the countdown.
func missionSets(replays []*spyparty.Replay) []MissionSet {
	tally := map[uint32]int{}
	total := 0
	for _, r := range replays {
		if !r.IsCountdown() {
			continue
		}
		tally[r.Header.Result.CompletedMissionsRaw]++
		total++
	}

	out := make([]MissionSet, 0, len(tally))
	for raw, n := range tally {
		out = append(out, MissionSet{Missions: raw, Count: n, Percent: percent(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Missions < out[j].Missions
	})
	return out
}

func missions(replays []*spyparty.Replay) []MissionStat {
	out := make([]MissionStat, 0, len(spyparty.AllMissions()))
	for _, m := range spyparty.AllMissions() {
		stat := MissionStat{Mission: m}
		for _, r := range replays {
			if r.Header.Result.SelectedMissions.Contains(m) {
				stat.Selected++
			}
			if r.Header.Result.CompletedMissions.Contains(m) {
				stat.Completed++
			}
		}
		stat.Percent = percent(stat.Completed, stat.Selected)
		out = append(out, stat)
	}
	return out
}

// players adds up wins and losses. For --players and --pair any role counts, for --spies
// and --snipers only games in that role do. Unfinished games count as played but are
// neither a win nor a loss.
func players(replays []*spyparty.Replay, f config.Filters) []PlayerStat {
	stats := map[string]*PlayerStat{}
	var order []string
	get := func(name string) *PlayerStat {
		if s, ok := stats[name]; ok {
			return s
		}
		s := &PlayerStat{Name: name}
		stats[name] = s
		order = append(order, name)
		return s
	}

	either := f.Pair
	if len(either) == 0 {
		either = f.Players
	}

	for _, r := range replays {
		for _, name := range either {
			if !r.HasPlayer(name) {
				continue
			}
			s := get(name)
			s.Games++
			if r.IsWinFor(name) {
				s.Wins++
			} else if r.IsLossFor(name) {
				s.Losses++
			}
		}
		for _, name := range f.Spies {
			if !r.HasSpy(name) {
				continue
			}
			s := get(name)
			s.Games++
			if r.IsSpyWin() {
				s.Wins++
			} else if r.IsSniperWin() {
				s.Losses++
			}
		}
		for _, name := range f.Snipers {
			if !r.HasSniper(name) {
				continue
			}
			s := get(name)
			s.Games++
			if r.IsSniperWin() {
				s.Wins++
			} else if r.IsSpyWin() {
				s.Losses++
			}
		}
	}

	out := make([]PlayerStat, 0, len(order))
	for _, name := range order {
		s := stats[name]
		s.Percent = percent(s.Wins, s.Games)
		out = append(out, *s)
	}
	return out
}

func clock(replays []*spyparty.Replay) ClockStat {
	var c ClockStat
	if len(replays) == 0 {
		return c
	}

	var duration, start, usage float64
	for _, r := range replays {
		duration += float64(r.Header.Duration)
		cs := r.Header.Result.ClockStart
		if cs == nil || *cs == 0 {
			continue
		}
		c.Games++
		start += float64(*cs)
		usage += float64(r.Header.Duration) / float64(*cs)
	}

	c.AverageDuration = duration / float64(len(replays))
	if c.Games > 0 {
		c.AverageClock = start / float64(c.Games)
		c.Usage = usage / float64(c.Games) * 100
	}
	return c
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}
