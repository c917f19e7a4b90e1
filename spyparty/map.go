package spyparty

import "fmt"

// Map is the venue a game was played on. Its value is the hash stored in the replay, so a
// map we haven't seen before is still a valid Map, it just isn't Known.
type Map uint32

const (
	Balcony   Map = 0x1dbd8e41
	Ballroom  Map = 0x5b121925
	Courtyard Map = 0x9dc5bb5e
	Gallery   Map = 0x7173b8bf
	HighRise  Map = 0x1a56c5a1
	Library   Map = 0x168f4f62
	Moderne   Map = 0x2e37f15b
	Pub       Map = 0x3b85fff3
	Terrace   Map = 0x9032ce22
	Veranda   Map = 0x6f81a558
)

var Venues = map[Map]string{
	Balcony:   "Balcony",
	Ballroom:  "Ballroom",
	Courtyard: "Courtyard",
	Gallery:   "Gallery",
	HighRise:  "High-Rise",
	Library:   "Library",
	Moderne:   "Moderne",
	Pub:       "Pub",
	Terrace:   "Terrace",
	Veranda:   "Veranda",
}

var venueNames = map[string]Map{
	"balcony":   Balcony,
	"ballroom":  Ballroom,
	"courtyard": Courtyard,
	"gallery":   Gallery,
	"highrise":  HighRise,
	"high-rise": HighRise,
	"library":   Library,
	"moderne":   Moderne,
	"pub":       Pub,
	"terrace":   Terrace,
	"veranda":   Veranda,
}

// DecodeMap never fails. New maps get added to the game faster than they get added here
// and that shouldn't make old replays unreadable.
func DecodeMap(hash uint32) Map {
	return Map(hash)
}

// ParseMap reads a map name the way a user would type it.
func ParseMap(s string) (Map, error) {
	if m, ok := venueNames[normalize(s)]; ok {
		return m, nil
	}
	return 0, &ParseError{Kind: ErrUnknownMap, Input: s}
}

func (m Map) Known() bool {
	_, ok := Venues[m]
	return ok
}

func (m Map) Hash() uint32 {
	return uint32(m)
}

func (m Map) String() string {
	if name, ok := Venues[m]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText keeps the hash of maps we don't know about.
func (m Map) MarshalText() ([]byte, error) {
	if m.Known() {
		return []byte(m.String()), nil
	}
	return []byte(fmt.Sprintf("Unknown(0x%08x)", uint32(m))), nil
}
