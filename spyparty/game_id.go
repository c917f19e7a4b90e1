package spyparty

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// GameID is the 128 bit id of a game, kept as the little endian bytes it was stored as.
type GameID [16]byte

// Lo and Hi are the low and high 64 bits of the id read as a little endian integer.
func (id GameID) Lo() uint64 {
	return binary.LittleEndian.Uint64(id[:8])
}

func (id GameID) Hi() uint64 {
	return binary.LittleEndian.Uint64(id[8:])
}

// String prints the id as a hex number with no leading zeros.
func (id GameID) String() string {
	if hi := id.Hi(); hi != 0 {
		return fmt.Sprintf("%x%016x", hi, id.Lo())
	}
	return fmt.Sprintf("%x", id.Lo())
}

// UUID exposes the raw id bytes as a UUID.
func (id GameID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

// Encoded is the short url safe form of the id.
func (id GameID) Encoded() string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

func (id GameID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// NewGameID builds an id from the high and low halves of its integer value.
func NewGameID(hi, lo uint64) GameID {
	var id GameID
	binary.LittleEndian.PutUint64(id[:8], lo)
	binary.LittleEndian.PutUint64(id[8:], hi)
	return id
}
