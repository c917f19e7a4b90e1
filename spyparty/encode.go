package spyparty

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var ErrCannotEncode = errors.New("cannot encode header")

// MarshalBinary writes the header back out in the layout for its ReplayVersion. The game
// data that would follow is not included, DataSize is written as is.
func (h *Header) MarshalBinary() ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	size := resultDataOffset(h.ReplayVersion) + resultDataSize(h.Result.Version) + 8
	size += int64(len(h.SpyUserName) + len(h.SniperUserName))
	size += int64(len(deref(h.SpyDisplayName)) + len(deref(h.SniperDisplayName)))
	b := make([]byte, 0, size)

	le := binary.LittleEndian
	b = append(b, magic...)
	b = le.AppendUint32(b, h.ReplayVersion)
	b = le.AppendUint32(b, h.ProtocolVersion)
	b = le.AppendUint32(b, h.SpyPartyVersion)
	b = le.AppendUint32(b, h.Flags)
	b = le.AppendUint32(b, math.Float32bits(h.Duration))
	b = append(b, h.GameID[:]...)
	b = le.AppendUint32(b, h.StartTime)
	b = le.AppendUint16(b, h.PlayID)
	b = append(b, uint8(len(h.SpyUserName)), uint8(len(h.SniperUserName)))

	if h.ReplayVersion == 5 {
		b = append(b, uint8(len(deref(h.SpyDisplayName))), uint8(len(deref(h.SniperDisplayName))))
		b = append(b, 0, 0)
	}

	res := &h.Result
	if h.ReplayVersion > 3 {
		flags := res.Version
		if res.SimpleRules != nil && *res.SimpleRules {
			flags |= resultSimpleRules
		}
		b = le.AppendUint32(b, flags)
	}
	b = le.AppendUint32(b, uint32(res.GameResult))
	b = le.AppendUint32(b, res.GameMode.Word())
	b = le.AppendUint32(b, res.Map.Hash())
	b = le.AppendUint32(b, PackMissions(res.SelectedMissions))
	b = le.AppendUint32(b, PackMissions(res.PickedMissions))
	completed := res.CompletedMissionsRaw
	if completed == 0 {
		completed = PackMissions(res.CompletedMissions)
	}
	b = le.AppendUint32(b, completed)
	if res.Version == 2 {
		b = le.AppendUint32(b, deref(res.Guests))
		b = le.AppendUint32(b, deref(res.ClockStart))
	}

	b = le.AppendUint32(b, math.Float32bits(h.Latency))
	b = le.AppendUint32(b, h.DataSize)
	b = append(b, h.SpyUserName...)
	b = append(b, h.SniperUserName...)
	b = append(b, deref(h.SpyDisplayName)...)
	b = append(b, deref(h.SniperDisplayName)...)

	return b, nil
}

func (h *Header) validate() error {
	if !supportedVersion(h.ReplayVersion) {
		return fmt.Errorf("%w: %v", ErrCannotEncode, &VersionError{Kind: ErrUnsupportedReplayVersion, Version: h.ReplayVersion})
	}
	if err := checkName("spy username", h.SpyUserName); err != nil {
		return err
	}
	if err := checkName("sniper username", h.SniperUserName); err != nil {
		return err
	}

	if h.ReplayVersion != 5 && (h.SpyDisplayName != nil || h.SniperDisplayName != nil) {
		return fmt.Errorf("%w: display names need replay version 5", ErrCannotEncode)
	}
	if h.SpyDisplayName != nil {
		if err := checkName("spy display name", *h.SpyDisplayName); err != nil {
			return err
		}
	}
	if h.SniperDisplayName != nil {
		if err := checkName("sniper display name", *h.SniperDisplayName); err != nil {
			return err
		}
	}

	res := &h.Result
	if h.ReplayVersion == 3 {
		if res.Version != 0 || res.SimpleRules != nil {
			return fmt.Errorf("%w: replay version 3 has no result flags", ErrCannotEncode)
		}
	} else if res.Version != 1 && res.Version != 2 {
		return fmt.Errorf("%w: %v", ErrCannotEncode, &VersionError{Kind: ErrUnsupportedResultVersion, Version: res.Version})
	}
	if res.GameResult > InProgress {
		return fmt.Errorf("%w: %v", ErrCannotEncode, &ValueError{Kind: ErrInvalidGameResult, Value: uint32(res.GameResult)})
	}
	if res.GameMode.Kind > Any {
		return fmt.Errorf("%w: %v", ErrCannotEncode, ErrInvalidGameMode)
	}
	if res.GameMode.Kind == Known && res.GameMode.Total != uint16(res.GameMode.Required) {
		return fmt.Errorf("%w: known mode %s has a total other than its required count", ErrCannotEncode, res.GameMode)
	}
	if res.GameMode.Total > modeTotalMax {
		return fmt.Errorf("%w: mode total %d is more than %d", ErrCannotEncode, res.GameMode.Total, modeTotalMax)
	}

	if res.Version == 2 {
		if res.Guests == nil || res.ClockStart == nil {
			return fmt.Errorf("%w: result data version 2 needs guests and clock start", ErrCannotEncode)
		}
	} else if res.Guests != nil || res.ClockStart != nil {
		return fmt.Errorf("%w: guests and clock start need result data version 2", ErrCannotEncode)
	}
	return nil
}

func checkName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s", ErrCannotEncode, field)
	}
	if len(name) > math.MaxUint8 {
		return fmt.Errorf("%w: %s is longer than %d bytes", ErrCannotEncode, field, math.MaxUint8)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
