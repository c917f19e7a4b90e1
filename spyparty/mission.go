package spyparty

import (
	"math/bits"
	"strings"
)

// Mission is one of the tasks the spy can complete.
type Mission uint8

const (
	BugAmbassador Mission = iota
	ContactDoubleAgent
	FingerprintAmbassador
	InspectStatues
	PurloinGuestList
	SeduceTarget
	SwapStatue
	TransferMicrofilm
)

// missionBits maps bit positions in the mission bitfields to missions. The order is the
// game's, not ours.
var missionBits = [8]Mission{
	BugAmbassador,
	ContactDoubleAgent,
	TransferMicrofilm,
	SwapStatue,
	InspectStatues,
	SeduceTarget,
	PurloinGuestList,
	FingerprintAmbassador,
}

var missionNames = [...]string{
	BugAmbassador:         "Bug Ambassador",
	ContactDoubleAgent:    "Contact Double Agent",
	FingerprintAmbassador: "Fingerprint Ambassador",
	InspectStatues:        "Inspect Statues",
	PurloinGuestList:      "Purloin Guest List",
	SeduceTarget:          "Seduce Target",
	SwapStatue:            "Swap Statue",
	TransferMicrofilm:     "Transfer Microfilm",
}

var missionShortNames = [...]string{
	BugAmbassador:         "Bug",
	ContactDoubleAgent:    "BB",
	FingerprintAmbassador: "Fingerprint",
	InspectStatues:        "Inspect",
	PurloinGuestList:      "Purloin",
	SeduceTarget:          "Seduce",
	SwapStatue:            "Swap",
	TransferMicrofilm:     "Transfer MF",
}

var missionAliases = map[string]Mission{
	"bugambassador":         BugAmbassador,
	"bug":                   BugAmbassador,
	"contactdoubleagent":    ContactDoubleAgent,
	"contactda":             ContactDoubleAgent,
	"contact":               ContactDoubleAgent,
	"bb":                    ContactDoubleAgent,
	"fingerprintambassador": FingerprintAmbassador,
	"fingerprint":           FingerprintAmbassador,
	"fp":                    FingerprintAmbassador,
	"inspectstatues":        InspectStatues,
	"inspect":               InspectStatues,
	"purloinguestlist":      PurloinGuestList,
	"purloin":               PurloinGuestList,
	"seducetarget":          SeduceTarget,
	"seduce":                SeduceTarget,
	"swapstatue":            SwapStatue,
	"swap":                  SwapStatue,
	"paws":                  SwapStatue,
	"transfermicrofilm":     TransferMicrofilm,
	"transfermf":            TransferMicrofilm,
	"mf":                    TransferMicrofilm,
}

// AllMissions lists every mission in display order.
func AllMissions() []Mission {
	return []Mission{
		BugAmbassador,
		ContactDoubleAgent,
		FingerprintAmbassador,
		InspectStatues,
		PurloinGuestList,
		SeduceTarget,
		SwapStatue,
		TransferMicrofilm,
	}
}

// ParseMission reads a mission the way a user would type it, short names included.
func ParseMission(s string) (Mission, error) {
	if m, ok := missionAliases[normalize(s)]; ok {
		return m, nil
	}
	return 0, &ParseError{Kind: ErrUnknownMission, Input: s}
}

func (m Mission) String() string {
	if int(m) < len(missionNames) {
		return missionNames[m]
	}
	return "Unknown"
}

func (m Mission) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Short is the name players use for the mission.
func (m Mission) Short() string {
	if int(m) < len(missionShortNames) {
		return missionShortNames[m]
	}
	return "Unknown"
}

func (m Mission) bit() uint32 {
	for i, b := range missionBits {
		if b == m {
			return 1 << i
		}
	}
	return 0
}

// Missions is a set of missions, in bitfield order.
type Missions []Mission

// UnpackMissions decodes a mission bitfield. Only the low 8 bits mean anything.
func UnpackMissions(data uint32) Missions {
	missions := make(Missions, 0, bits.OnesCount32(data&0xff))
	for i, m := range missionBits {
		if data&(1<<i) != 0 {
			missions = append(missions, m)
		}
	}
	return missions
}

// PackMissions is the inverse of UnpackMissions.
func PackMissions(missions []Mission) uint32 {
	var data uint32
	for _, m := range missions {
		data |= m.bit()
	}
	return data
}

func (ms Missions) Contains(m Mission) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

func (ms Missions) String() string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}

// ShortString joins the short names, e.g. "Bug+BB+Swap".
func (ms Missions) ShortString() string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Short()
	}
	return strings.Join(names, "+")
}
