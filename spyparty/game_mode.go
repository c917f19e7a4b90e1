package spyparty

import (
	"fmt"
	"regexp"
	"strconv"
)

// ModeKind is the family of a game mode.
type ModeKind uint8

const (
	Known ModeKind = iota
	Pick
	Any
)

func (k ModeKind) String() string {
	switch k {
	case Known:
		return "Known"
	case Pick:
		return "Pick"
	case Any:
		return "Any"
	default:
		return "Invalid"
	}
}

// GameMode is the set of rules for completing missions, e.g. "Any 4 of 7". For Known
// modes every selected mission has to be done, so Total is the same as Required.
type GameMode struct {
	Kind     ModeKind
	Required uint8
	Total    uint16
}

func KnownMode(total uint8) GameMode {
	return GameMode{Kind: Known, Required: total, Total: uint16(total)}
}

func PickMode(required uint8, total uint16) GameMode {
	return GameMode{Kind: Pick, Required: required, Total: total}
}

func AnyMode(required uint8, total uint16) GameMode {
	return GameMode{Kind: Any, Required: required, Total: total}
}

const (
	modeTagMask   = 0xff000000
	modeTotalMask = 0x00ffc000
	modeTotalBits = 14
	modeReqMask   = 0x000000ff
	modeTotalMax  = modeTotalMask >> modeTotalBits

	modeTagKnown = 0x00000000
	modeTagPick  = 0x10000000
	modeTagAny   = 0x20000000
)

// DecodeGameMode unpacks the mode word: the top byte says which mode it is, the low byte
// is the required count and the total sits 14 bits up.
func DecodeGameMode(word uint32) (GameMode, error) {
	required := uint8(word & modeReqMask)
	total := uint16((word & modeTotalMask) >> modeTotalBits)

	switch word & modeTagMask {
	case modeTagKnown:
		return KnownMode(required), nil
	case modeTagPick:
		return PickMode(required, total), nil
	case modeTagAny:
		return AnyMode(required, total), nil
	default:
		return GameMode{}, &ValueError{Kind: ErrInvalidGameMode, Value: word}
	}
}

// Word packs the mode back into the layout DecodeGameMode reads. Known modes are written
// with a zero total, same as the game does. Totals above 1023 don't fit and are cut off.
func (m GameMode) Word() uint32 {
	required := uint32(m.Required)
	total := (uint32(m.Total) << modeTotalBits) & modeTotalMask

	switch m.Kind {
	case Pick:
		return modeTagPick | total | required
	case Any:
		return modeTagAny | total | required
	default:
		return modeTagKnown | required
	}
}

// matches "known 4 of 4", "any 4/8", "p3/5" and "k4" once lower cased with spaces removed
var modePattern = regexp.MustCompile(`^(?P<mode>[a-z]+)(?P<required>\d)(?:(?:/|of)(?P<total>\d))?$`)

// ParseGameMode reads a mode the way a user would type it.
func ParseGameMode(s string) (GameMode, error) {
	caps := modePattern.FindStringSubmatch(normalize(s))
	if caps == nil {
		return GameMode{}, &ParseError{Kind: ErrUnknownGameMode, Input: s}
	}

	required, err := strconv.ParseUint(caps[modePattern.SubexpIndex("required")], 10, 8)
	if err != nil {
		return GameMode{}, &ParseError{Kind: ErrUnknownGameMode, Input: s}
	}

	mode := caps[modePattern.SubexpIndex("mode")]
	if mode == "known" || mode == "k" {
		return KnownMode(uint8(required)), nil
	}

	// only known modes can leave the total off
	rawTotal := caps[modePattern.SubexpIndex("total")]
	if rawTotal == "" {
		return GameMode{}, &ParseError{Kind: ErrUnknownGameMode, Input: s}
	}
	total, err := strconv.ParseUint(rawTotal, 10, 16)
	if err != nil {
		return GameMode{}, &ParseError{Kind: ErrUnknownGameMode, Input: s}
	}

	switch mode {
	case "any", "a":
		return AnyMode(uint8(required), uint16(total)), nil
	case "pick", "p":
		return PickMode(uint8(required), uint16(total)), nil
	default:
		return GameMode{}, &ParseError{Kind: ErrUnknownGameMode, Input: s}
	}
}

// ParseModeKind reads just the family of a mode, e.g. "any" or "p".
func ParseModeKind(s string) (ModeKind, bool) {
	switch normalize(s) {
	case "any", "a":
		return Any, true
	case "pick", "p":
		return Pick, true
	case "known", "k":
		return Known, true
	default:
		return 0, false
	}
}

func (m GameMode) String() string {
	switch m.Kind {
	case Known:
		return fmt.Sprintf("k%d", m.Required)
	case Pick:
		return fmt.Sprintf("p%d/%d", m.Required, m.Total)
	case Any:
		return fmt.Sprintf("a%d/%d", m.Required, m.Total)
	default:
		return ""
	}
}

func (m GameMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
