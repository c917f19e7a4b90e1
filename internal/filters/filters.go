package filters

import (
	"strings"

	"github.com/LtHummus/spyparsey/internal/config"
	"github.com/LtHummus/spyparsey/spyparty"
	"github.com/rs/zerolog"
)

// Filter decides whether a replay is kept.
type Filter interface {
	Match(r *spyparty.Replay) bool
}

// Func adapts a plain function to a Filter.
type Func func(r *spyparty.Replay) bool

func (f Func) Match(r *spyparty.Replay) bool {
	return f(r)
}

// Set keeps a replay only when every filter in it does. An empty set keeps everything.
type Set []Filter

func (s Set) Match(r *spyparty.Replay) bool {
	for _, f := range s {
		if !f.Match(r) {
			return false
		}
	}
	return true
}

// AnyOf matches when at least one of the predicates does.
func AnyOf(preds ...Func) Filter {
	return Func(func(r *spyparty.Replay) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	})
}

// AllOf matches when every predicate does.
func AllOf(preds ...Func) Filter {
	return Func(func(r *spyparty.Replay) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	})
}

func never(*spyparty.Replay) bool { return false }

// Build turns the filter settings into a Set. Values that don't parse are logged once
// here and then never match, the rest of the filter still works.
func Build(f config.Filters, log zerolog.Logger) Set {
	var set Set

	add := func(values []string, combine func(...Func) Filter, pred func(string) Func) {
		if len(values) == 0 {
			return
		}
		preds := make([]Func, 0, len(values))
		for _, v := range values {
			preds = append(preds, pred(v))
		}
		set = append(set, combine(preds...))
	}
	when := func(on bool, pred Func) {
		if on {
			set = append(set, pred)
		}
	}

	add(f.Players, AnyOf, player)
	add(f.Pair, AllOf, player)
	add(f.Spies, AnyOf, spy)
	add(f.Snipers, AnyOf, sniper)
	add(f.Maps, AnyOf, mapFilter(log))
	add(f.Modes, AnyOf, modeFilter(log))
	add(f.Results, AnyOf, resultFilter(log))
	add(f.Missions, AnyOf, missionFilter(log))
	add(f.MissionsAll, AllOf, missionFilter(log))
	when(f.Countdown, (*spyparty.Replay).IsCountdown)
	when(f.SpyWin, (*spyparty.Replay).IsSpyWin)
	when(f.SniperWin, (*spyparty.Replay).IsSniperWin)

	return set
}

func player(name string) Func {
	return func(r *spyparty.Replay) bool { return r.HasPlayer(name) }
}

func spy(name string) Func {
	return func(r *spyparty.Replay) bool { return r.HasSpy(name) }
}

func sniper(name string) Func {
	return func(r *spyparty.Replay) bool { return r.HasSniper(name) }
}

func mapFilter(log zerolog.Logger) func(string) Func {
	return func(name string) Func {
		if strings.EqualFold(strings.TrimSpace(name), "unknown") {
			return func(r *spyparty.Replay) bool { return !r.Header.Result.Map.Known() }
		}
		m, err := spyparty.ParseMap(name)
		if err != nil {
			log.Error().Err(err).Msg("Ignoring map filter")
			return never
		}
		return func(r *spyparty.Replay) bool { return r.Header.Result.Map == m }
	}
}

// modeFilter takes either a whole mode ("a4/8") or just its family ("any").
func modeFilter(log zerolog.Logger) func(string) Func {
	return func(s string) Func {
		if kind, ok := spyparty.ParseModeKind(s); ok {
			return func(r *spyparty.Replay) bool { return r.Header.Result.GameMode.Kind == kind }
		}
		mode, err := spyparty.ParseGameMode(s)
		if err != nil {
			log.Error().Err(err).Msg("Ignoring mode filter")
			return never
		}
		return func(r *spyparty.Replay) bool { return r.Header.Result.GameMode == mode }
	}
}

func resultFilter(log zerolog.Logger) func(string) Func {
	return func(s string) Func {
		res, err := spyparty.ParseGameResult(s)
		if err != nil {
			log.Error().Err(err).Msg("Ignoring result filter")
			return never
		}
		return func(r *spyparty.Replay) bool { return r.Header.Result.GameResult == res }
	}
}

func missionFilter(log zerolog.Logger) func(string) Func {
	return func(s string) Func {
		m, err := spyparty.ParseMission(s)
		if err != nil {
			log.Error().Err(err).Msg("Ignoring mission filter")
			return never
		}
		return func(r *spyparty.Replay) bool { return r.Header.Result.CompletedMissions.Contains(m) }
	}
}
