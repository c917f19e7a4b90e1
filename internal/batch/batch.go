package batch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/LtHummus/spyparsey/internal/filters"
	"github.com/LtHummus/spyparsey/spyparty"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// MatchedReplay is a replay that made it through the filters, along with where it came
// from.
type MatchedReplay struct {
	*spyparty.Replay
	Path string `json:"path" yaml:"path"`
}

type Result struct {
	Found   int64
	Parsed  int64
	Replays []MatchedReplay
}

// Runner decodes replay files in parallel.
type Runner struct {
	Workers int
	Filter  filters.Filter
	Logger  zerolog.Logger
}

func New(workers int, filter filters.Filter, log zerolog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if filter == nil {
		filter = filters.Set{}
	}
	return &Runner{Workers: workers, Filter: filter, Logger: log}
}

// Run parses every path and keeps the replays the filter matches, at most one per game id,
// ordered by start time. Files that fail to parse are logged and skipped. The only error
// is the context being cancelled.
func (b *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	var (
		parsed  atomic.Int64
		mu      sync.Mutex
		matched []MatchedReplay
	)

	var g errgroup.Group
	g.SetLimit(b.Workers)

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			replay, err := parseFile(path)
			if err != nil {
				b.Logger.Warn().Err(err).Str("path", path).Msg("Failed to parse replay")
				return nil
			}
			parsed.Add(1)

			if m := replay.Header.Result.Map; !m.Known() {
				b.Logger.Warn().Str("path", path).Str("hash", fmt.Sprintf("0x%08x", m.Hash())).Msg("Unknown map")
			}
			if !b.Filter.Match(replay) {
				return nil
			}

			mu.Lock()
			matched = append(matched, MatchedReplay{Replay: replay, Path: path})
			mu.Unlock()
			return nil
		})
	}

	// workers never return errors
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Found:   int64(len(paths)),
		Parsed:  parsed.Load(),
		Replays: dedupe(matched),
	}
	b.Logger.Info().
		Int64("found", res.Found).
		Int64("parsed", res.Parsed).
		Int("matched", len(res.Replays)).
		Msg("Finished parsing replays")

	return res, nil
}

func parseFile(path string) (*spyparty.Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return spyparty.ParseReplayFile(bufio.NewReader(f))
}

// dedupe sorts by start time and drops later copies of the same game. Path breaks ties so
// the same files always give the same answer.
func dedupe(replays []MatchedReplay) []MatchedReplay {
	sort.Slice(replays, func(i, j int) bool {
		a, b := replays[i], replays[j]
		if a.Header.StartTime != b.Header.StartTime {
			return a.Header.StartTime < b.Header.StartTime
		}
		return a.Path < b.Path
	})

	seen := make(map[spyparty.GameID]struct{}, len(replays))
	out := replays[:0]
	for _, r := range replays {
		if _, ok := seen[r.Header.GameID]; ok {
			continue
		}
		seen[r.Header.GameID] = struct{}{}
		out = append(out, r)
	}
	return out
}
