package spyparty

import "io"

// ResultData is the summary of how a game went.
type ResultData struct {
	// Version is 0 for replay version 3, which has no result flags, and 1 or 2 after that.
	Version uint32 `json:"version"`
	// SimpleRules is nil for replay version 3.
	SimpleRules *bool `json:"simple_rules,omitempty"`

	GameResult GameResult `json:"game_result"`
	GameMode   GameMode   `json:"game_mode"`
	Map        Map        `json:"map"`

	SelectedMissions  Missions `json:"selected_missions"`
	PickedMissions    Missions `json:"picked_missions"`
	CompletedMissions Missions `json:"completed_missions"`
	// CompletedMissionsRaw is the undecoded bitfield, handy for counting exact combinations.
	CompletedMissionsRaw uint32 `json:"completed_missions_raw"`

	// Guests and ClockStart only exist from result data version 2.
	Guests     *uint32 `json:"guests,omitempty"`
	ClockStart *uint32 `json:"clock_start,omitempty"`
}

const (
	resultVersionMask = 0x0f
	resultSimpleMask  = 0xf0
	resultSimpleRules = 0x10
)

// ParseResultData reads the result data block. replayVersion decides whether the block
// starts with a flags word.
func ParseResultData(source io.Reader, replayVersion uint32) (*ResultData, error) {
	return readResultData(newReader(source), replayVersion)
}

func readResultData(r *reader, replayVersion uint32) (*ResultData, error) {
	ret := &ResultData{}

	if replayVersion > 3 {
		flags, err := r.u32(fieldResultFlags)
		if err != nil {
			return nil, err
		}
		version := flags & resultVersionMask
		if version != 1 && version != 2 {
			return nil, &VersionError{Kind: ErrUnsupportedResultVersion, Version: version}
		}
		simple := flags&resultSimpleMask == resultSimpleRules
		ret.Version = version
		ret.SimpleRules = &simple
	}

	result, err := r.u32(fieldGameResult)
	if err != nil {
		return nil, err
	}
	if ret.GameResult, err = DecodeGameResult(result); err != nil {
		return nil, err
	}

	mode, err := r.u32(fieldGameMode)
	if err != nil {
		return nil, err
	}
	if ret.GameMode, err = DecodeGameMode(mode); err != nil {
		return nil, err
	}

	venue, err := r.u32(fieldMap)
	if err != nil {
		return nil, err
	}
	ret.Map = DecodeMap(venue)

	selected, err := r.u32(fieldSelectedMissions)
	if err != nil {
		return nil, err
	}
	ret.SelectedMissions = UnpackMissions(selected)

	picked, err := r.u32(fieldPickedMissions)
	if err != nil {
		return nil, err
	}
	ret.PickedMissions = UnpackMissions(picked)

	completed, err := r.u32(fieldCompleted)
	if err != nil {
		return nil, err
	}
	ret.CompletedMissionsRaw = completed
	ret.CompletedMissions = UnpackMissions(completed)

	if ret.Version == 2 {
		guests, err := r.u32(fieldGuests)
		if err != nil {
			return nil, err
		}
		clock, err := r.u32(fieldClockStart)
		if err != nil {
			return nil, err
		}
		ret.Guests = &guests
		ret.ClockStart = &clock
	}

	return ret, nil
}
