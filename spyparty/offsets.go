package spyparty

// Names of the header fields, as they show up in read errors.
const (
	fieldIdentifier              = "identifier"
	fieldReplayVersion           = "replay version"
	fieldProtocolVersion         = "protocol version"
	fieldSpyPartyVersion         = "spyparty version"
	fieldFlags                   = "flags"
	fieldDuration                = "duration"
	fieldGameID                  = "game id"
	fieldStartTime               = "start time"
	fieldPlayID                  = "play id"
	fieldSpyNameLength           = "spy username length"
	fieldSniperNameLength        = "sniper username length"
	fieldSpyDisplayNameLength    = "spy display name length"
	fieldSniperDisplayNameLength = "sniper display name length"
	fieldReserved                = "reserved"
	fieldLatency                 = "latency"
	fieldDataSize                = "data size"
	fieldSpyName                 = "spy username"
	fieldSniperName              = "sniper username"
	fieldSpyDisplayName          = "spy display name"
	fieldSniperDisplayName       = "sniper display name"

	fieldResultFlags      = "result flags"
	fieldGameResult       = "game result"
	fieldGameMode         = "game mode"
	fieldMap              = "map"
	fieldSelectedMissions = "selected missions"
	fieldPickedMissions   = "picked missions"
	fieldCompleted        = "completed missions"
	fieldGuests           = "guests"
	fieldClockStart       = "clock start"
)

// Offsets of the fixed part of the header. They're the same for every supported version,
// everything after the name lengths depends on the version.
const (
	offsetIdentifier              = 0x00
	offsetReplayVersion           = 0x04
	offsetProtocolVersion         = 0x08
	offsetSpyPartyVersion         = 0x0c
	offsetFlags                   = 0x10
	offsetDuration                = 0x14
	offsetGameID                  = 0x18
	offsetStartTime               = 0x28
	offsetPlayID                  = 0x2c
	offsetSpyNameLength           = 0x2e
	offsetSniperNameLength        = 0x2f
	offsetSpyDisplayNameLength    = 0x30 // v5 only
	offsetSniperDisplayNameLength = 0x31 // v5 only
)

// resultDataOffset is where the result data block starts for a replay version.
func resultDataOffset(version uint32) int64 {
	if version == 5 {
		return 0x34
	}
	return 0x30
}

// resultDataSize is the length of the result data block for a result data version.
func resultDataSize(resultVersion uint32) int64 {
	switch resultVersion {
	case 0:
		return 24
	case 1:
		return 28
	default:
		return 36
	}
}
