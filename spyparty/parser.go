package spyparty

import (
	"bytes"
	"io"
	"time"
)

var magic = []byte("RPLY")

// Header is everything in a replay before the game data itself.
type Header struct {
	ReplayVersion   uint32  `json:"replay_version"`
	ProtocolVersion uint32  `json:"protocol_version"`
	SpyPartyVersion uint32  `json:"spyparty_version"`
	Flags           uint32  `json:"flags"` // unknown
	Duration        float32 `json:"duration"`
	GameID          GameID  `json:"game_id"`
	StartTime       uint32  `json:"start_time"`
	// PlayID is the number of this game within its match.
	PlayID uint16 `json:"play_id"`

	Result ResultData `json:"result"`

	// Latency always seems to be 0.75 but nothing relies on that.
	Latency float32 `json:"latency"`
	// DataSize is the length of the game data following the names.
	DataSize uint32 `json:"data_size"`

	SpyUserName    string `json:"spy_user_name"`
	SniperUserName string `json:"sniper_user_name"`
	// Display names came in with version 5 to tell steam ids apart from the names people
	// see. They're nil when not set.
	SpyDisplayName    *string `json:"spy_display_name,omitempty"`
	SniperDisplayName *string `json:"sniper_display_name,omitempty"`
}

func SupportedVersions() []int {
	return []int{3, 4, 5}
}

func supportedVersion(version uint32) bool {
	return version == 3 || version == 4 || version == 5
}

// ParseHeader decodes a replay header. Nothing is returned unless the whole header could
// be read.
func ParseHeader(source io.Reader) (*Header, error) {
	r := newReader(source)
	h := &Header{}

	id, err := r.bytes(fieldIdentifier, len(magic))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(id, magic) {
		return nil, ErrInvalidIdentifier
	}

	if h.ReplayVersion, err = r.u32(fieldReplayVersion); err != nil {
		return nil, err
	}
	if !supportedVersion(h.ReplayVersion) {
		return nil, &VersionError{Kind: ErrUnsupportedReplayVersion, Version: h.ReplayVersion}
	}

	if h.ProtocolVersion, err = r.u32(fieldProtocolVersion); err != nil {
		return nil, err
	}
	if h.SpyPartyVersion, err = r.u32(fieldSpyPartyVersion); err != nil {
		return nil, err
	}
	if h.Flags, err = r.u32(fieldFlags); err != nil {
		return nil, err
	}
	if h.Duration, err = r.f32(fieldDuration); err != nil {
		return nil, err
	}
	rawID, err := r.u128(fieldGameID)
	if err != nil {
		return nil, err
	}
	h.GameID = GameID(rawID)
	if h.StartTime, err = r.u32(fieldStartTime); err != nil {
		return nil, err
	}
	if h.PlayID, err = r.u16(fieldPlayID); err != nil {
		return nil, err
	}

	spyLen, err := r.u8(fieldSpyNameLength)
	if err != nil {
		return nil, err
	}
	if spyLen == 0 {
		return nil, ErrMissingSpyName
	}
	sniperLen, err := r.u8(fieldSniperNameLength)
	if err != nil {
		return nil, err
	}
	if sniperLen == 0 {
		return nil, ErrMissingSniperName
	}

	var spyDisplayLen, sniperDisplayLen uint8
	if h.ReplayVersion == 5 {
		if spyDisplayLen, err = r.u8(fieldSpyDisplayNameLength); err != nil {
			return nil, err
		}
		if sniperDisplayLen, err = r.u8(fieldSniperDisplayNameLength); err != nil {
			return nil, err
		}
		// nobody knows what these are
		if err = r.skip(fieldReserved, 2); err != nil {
			return nil, err
		}
	}

	result, err := readResultData(r, h.ReplayVersion)
	if err != nil {
		return nil, err
	}
	h.Result = *result

	if h.Latency, err = r.f32(fieldLatency); err != nil {
		return nil, err
	}
	if h.DataSize, err = r.u32(fieldDataSize); err != nil {
		return nil, err
	}

	if h.SpyUserName, err = r.str(fieldSpyName, int(spyLen)); err != nil {
		return nil, err
	}
	if h.SniperUserName, err = r.str(fieldSniperName, int(sniperLen)); err != nil {
		return nil, err
	}
	if h.SpyDisplayName, err = readDisplayName(r, fieldSpyDisplayName, spyDisplayLen); err != nil {
		return nil, err
	}
	if h.SniperDisplayName, err = readDisplayName(r, fieldSniperDisplayName, sniperDisplayLen); err != nil {
		return nil, err
	}

	return h, nil
}

func readDisplayName(r *reader, field string, n uint8) (*string, error) {
	if n == 0 {
		return nil, nil
	}
	name, err := r.str(field, int(n))
	if err != nil {
		return nil, err
	}
	return &name, nil
}

// ParseReplayFile reads the header of a replay file. The game data after it is left
// unread.
func ParseReplayFile(source io.Reader) (*Replay, error) {
	h, err := ParseHeader(source)
	if err != nil {
		return nil, err
	}
	return &Replay{Header: *h}, nil
}

// Time is StartTime as a time.Time.
func (h *Header) Time() time.Time {
	return time.Unix(int64(h.StartTime), 0)
}
