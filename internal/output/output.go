package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/LtHummus/spyparsey/internal/batch"
	"gopkg.in/yaml.v3"
)

// Record is the flat view of a matched replay used by every machine readable output.
type Record struct {
	Path            string   `json:"path" yaml:"path"`
	GameID          string   `json:"game_id" yaml:"game_id"`
	Start           string   `json:"start" yaml:"start"`
	ReplayVersion   uint32   `json:"replay_version" yaml:"replay_version"`
	SpyPartyVersion uint32   `json:"spyparty_version" yaml:"spyparty_version"`
	Spy             string   `json:"spy" yaml:"spy"`
	Sniper          string   `json:"sniper" yaml:"sniper"`
	SpyUserName     string   `json:"spy_user_name" yaml:"spy_user_name"`
	SniperUserName  string   `json:"sniper_user_name" yaml:"sniper_user_name"`
	Map             string   `json:"map" yaml:"map"`
	Mode            string   `json:"mode" yaml:"mode"`
	Result          string   `json:"result" yaml:"result"`
	Winner          string   `json:"winner" yaml:"winner"`
	Duration        float32  `json:"duration" yaml:"duration"`
	Selected        []string `json:"selected" yaml:"selected"`
	Picked          []string `json:"picked" yaml:"picked"`
	Completed       []string `json:"completed" yaml:"completed"`
	Guests          *uint32  `json:"guests,omitempty" yaml:"guests,omitempty"`
	ClockStart      *uint32  `json:"clock_start,omitempty" yaml:"clock_start,omitempty"`
}

func NewRecord(m batch.MatchedReplay) Record {
	h := &m.Header
	mapName, _ := h.Result.Map.MarshalText()

	return Record{
		Path:            m.Path,
		GameID:          h.GameID.String(),
		Start:           h.Time().UTC().Format(time.RFC3339),
		ReplayVersion:   h.ReplayVersion,
		SpyPartyVersion: h.SpyPartyVersion,
		Spy:             m.SpyName(),
		Sniper:          m.SniperName(),
		SpyUserName:     h.SpyUserName,
		SniperUserName:  h.SniperUserName,
		Map:             string(mapName),
		Mode:            h.Result.GameMode.String(),
		Result:          h.Result.GameResult.String(),
		Winner:          m.WinnerName(),
		Duration:        h.Duration,
		Selected:        names(h.Result.SelectedMissions),
		Picked:          names(h.Result.PickedMissions),
		Completed:       names(h.Result.CompletedMissions),
		Guests:          h.Result.Guests,
		ClockStart:      h.Result.ClockStart,
	}
}

func Records(replays []batch.MatchedReplay) []Record {
	out := make([]Record, 0, len(replays))
	for _, r := range replays {
		out = append(out, NewRecord(r))
	}
	return out
}

func Count(w io.Writer, replays []batch.MatchedReplay) error {
	_, err := fmt.Fprintln(w, len(replays))
	return err
}

func Paths(w io.Writer, replays []batch.MatchedReplay) error {
	for _, r := range replays {
		if _, err := fmt.Fprintln(w, r.Path); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes v indented. Replays get flattened into Records first.
func JSON(w io.Writer, v any) error {
	if replays, ok := v.([]batch.MatchedReplay); ok {
		v = Records(replays)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func YAML(w io.Writer, v any) error {
	if replays, ok := v.([]batch.MatchedReplay); ok {
		v = Records(replays)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
