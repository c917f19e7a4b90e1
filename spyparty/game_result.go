package spyparty

import "strings"

// GameResult is how a game ended.
type GameResult uint32

const (
	MissionsWin GameResult = iota
	SpyTimeout
	SpyShot
	CivilianShot
	InProgress
)

var gameResultNames = map[GameResult]string{
	MissionsWin:  "MissionsWin",
	SpyTimeout:   "SpyTimeout",
	SpyShot:      "SpyShot",
	CivilianShot: "CivilianShot",
	InProgress:   "InProgress",
}

// DecodeGameResult turns the number stored in a replay into a GameResult. There are no
// other results in the game, so anything outside 0-4 is an error.
func DecodeGameResult(v uint32) (GameResult, error) {
	if v > uint32(InProgress) {
		return 0, &ValueError{Kind: ErrInvalidGameResult, Value: v}
	}
	return GameResult(v), nil
}

// ParseGameResult reads a result the way a user would type it.
func ParseGameResult(s string) (GameResult, error) {
	switch normalize(s) {
	case "missionswin":
		return MissionsWin, nil
	case "timeout":
		return SpyTimeout, nil
	case "spyshot":
		return SpyShot, nil
	case "civilianshot":
		return CivilianShot, nil
	case "inprogress", "unfinished":
		return InProgress, nil
	default:
		return 0, &ParseError{Kind: ErrUnknownGameResult, Input: s}
	}
}

func (r GameResult) String() string {
	if name, ok := gameResultNames[r]; ok {
		return name
	}
	return "Invalid"
}

func (r GameResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// normalize lower cases user input and drops any spaces.
func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}
