package spyparty

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func sampleHeader(version uint32) *Header {
	h := &Header{
		ReplayVersion:   version,
		ProtocolVersion: 23,
		SpyPartyVersion: 6134,
		Duration:        125.3125,
		GameID:          NewGameID(0x9dca1e19a581d2af, 0x884a4ff7b686b532),
		StartTime:       1534431629,
		PlayID:          1,
		Latency:         0.75,
		DataSize:        40213,
		SpyUserName:     "plastikqs",
		SniperUserName:  "lthummus",
		Result: ResultData{
			GameResult:           MissionsWin,
			GameMode:             AnyMode(4, 7),
			Map:                  Balcony,
			SelectedMissions:     UnpackMissions(0x7f),
			PickedMissions:       UnpackMissions(0),
			CompletedMissions:    UnpackMissions(0x39),
			CompletedMissionsRaw: 0x39,
		},
	}

	switch version {
	case 4:
		h.Result.Version = 1
		h.Result.SimpleRules = ptr(false)
	case 5:
		h.Result.Version = 2
		h.Result.SimpleRules = ptr(false)
		h.Result.Guests = ptr(uint32(21))
		h.Result.ClockStart = ptr(uint32(210))
		h.SpyDisplayName = ptr("plastikqs/steam")
		h.SniperDisplayName = ptr("LtHummus")
	}
	return h
}

func encode(t *testing.T, h *Header) []byte {
	t.Helper()
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestParseHeader_RoundTrip(t *testing.T) {
	for _, version := range []uint32{3, 4, 5} {
		want := sampleHeader(version)

		got, err := ParseHeader(bytes.NewReader(encode(t, want)))
		require.NoError(t, err, "version %d", version)
		assert.Equal(t, want, got, "version %d", version)
	}
}

func TestParseHeader_FixedLayout(t *testing.T) {
	h := sampleHeader(5)
	b := encode(t, h)

	assert.Equal(t, []byte("RPLY"), b[offsetIdentifier:offsetIdentifier+4])
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(b[offsetReplayVersion:]))
	assert.Equal(t, uint32(23), binary.LittleEndian.Uint32(b[offsetProtocolVersion:]))
	assert.Equal(t, uint32(6134), binary.LittleEndian.Uint32(b[offsetSpyPartyVersion:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(b[offsetFlags:]))
	assert.Equal(t, h.GameID[:], b[offsetGameID:offsetGameID+16])
	assert.Equal(t, uint32(1534431629), binary.LittleEndian.Uint32(b[offsetStartTime:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(b[offsetPlayID:]))
	assert.Equal(t, byte(len(h.SpyUserName)), b[offsetSpyNameLength])
	assert.Equal(t, byte(len(h.SniperUserName)), b[offsetSniperNameLength])
	assert.Equal(t, byte(len(*h.SpyDisplayName)), b[offsetSpyDisplayNameLength])
	assert.Equal(t, byte(len(*h.SniperDisplayName)), b[offsetSniperDisplayNameLength])

	flags := binary.LittleEndian.Uint32(b[resultDataOffset(5):])
	assert.Equal(t, uint32(2), flags)
	assert.Equal(t, uint32(Balcony), binary.LittleEndian.Uint32(b[resultDataOffset(5)+12:]))

	names := resultDataOffset(5) + resultDataSize(2) + 8
	assert.Equal(t, "plastikqs", string(b[names:names+9]))
}

func TestParseHeader_DisplayNamesVerbatim(t *testing.T) {
	h := sampleHeader(5)
	h.SpyDisplayName = ptr("スパイ")
	h.SniperDisplayName = ptr("sniper ✓")

	got, err := ParseHeader(bytes.NewReader(encode(t, h)))
	require.NoError(t, err)
	require.NotNil(t, got.SpyDisplayName)
	require.NotNil(t, got.SniperDisplayName)
	assert.Equal(t, "スパイ", *got.SpyDisplayName)
	assert.Equal(t, "sniper ✓", *got.SniperDisplayName)
}

func TestParseHeader_NoDisplayNames(t *testing.T) {
	h := sampleHeader(5)
	h.SpyDisplayName = nil
	h.SniperDisplayName = nil

	got, err := ParseHeader(bytes.NewReader(encode(t, h)))
	require.NoError(t, err)
	assert.Nil(t, got.SpyDisplayName)
	assert.Nil(t, got.SniperDisplayName)
}

func TestParseHeader_ReservedBytesSkipped(t *testing.T) {
	h := sampleHeader(5)
	b := encode(t, h)
	b[offsetSniperDisplayNameLength+1] = 0xde
	b[offsetSniperDisplayNameLength+2] = 0xad

	got, err := ParseHeader(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestParseHeader_Version3HasNoResultFlags(t *testing.T) {
	h := sampleHeader(3)
	// the first result word for version 3 is the game result, make it look like flags
	h.Result.GameResult = SpyShot

	got, err := ParseHeader(bytes.NewReader(encode(t, h)))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got.Result.Version)
	assert.Nil(t, got.Result.SimpleRules)
	assert.Nil(t, got.Result.Guests)
	assert.Nil(t, got.Result.ClockStart)
	assert.Equal(t, SpyShot, got.Result.GameResult)
}

func TestParseHeader_InvalidIdentifier(t *testing.T) {
	_, err := ParseHeader(bytes.NewReader([]byte("NOPE")))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.EqualError(t, err, "invalid identifier")
}

func TestParseHeader_TruncatedIdentifier(t *testing.T) {
	_, err := ParseHeader(bytes.NewReader([]byte("RPL")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.NotErrorIs(t, err, ErrInvalidIdentifier)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, fieldIdentifier, readErr.Field)
	assert.Equal(t, int64(0), readErr.Offset)
}

func TestParseHeader_UnsupportedVersion(t *testing.T) {
	b := append([]byte("RPLY"), 2, 0, 0, 0)

	_, err := ParseHeader(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrUnsupportedReplayVersion)
	assert.EqualError(t, err, "unsupported replay version (2)")

	var versionErr *VersionError
	require.ErrorAs(t, err, &versionErr)
	assert.Equal(t, uint32(2), versionErr.Version)
}

func TestParseHeader_MissingNames(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   error
	}{
		{"spy", offsetSpyNameLength, ErrMissingSpyName},
		{"sniper", offsetSniperNameLength, ErrMissingSniperName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := encode(t, sampleHeader(4))
			b[tt.offset] = 0

			got, err := ParseHeader(bytes.NewReader(b))
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseHeader_InvalidNames(t *testing.T) {
	h := sampleHeader(5)
	b := encode(t, h)
	names := int(resultDataOffset(5) + resultDataSize(2) + 8)

	tests := []struct {
		name  string
		index int
		field string
	}{
		{"spy username", names + 2, fieldSpyName},
		{"sniper username", names + len(h.SpyUserName), fieldSniperName},
		{"spy display name", names + len(h.SpyUserName) + len(h.SniperUserName) + 1, fieldSpyDisplayName},
		{"sniper display name", len(b) - 1, fieldSniperDisplayName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := bytes.Clone(b)
			broken[tt.index] = 0xff

			got, err := ParseHeader(bytes.NewReader(broken))
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrInvalidString)

			var strErr *StringError
			require.ErrorAs(t, err, &strErr)
			assert.Equal(t, tt.field, strErr.Field)
		})
	}
}

func TestParseHeader_InvalidResultData(t *testing.T) {
	b := encode(t, sampleHeader(4))
	start := resultDataOffset(4)

	broken := bytes.Clone(b)
	binary.LittleEndian.PutUint32(broken[start+4:], 9)
	_, err := ParseHeader(bytes.NewReader(broken))
	assert.ErrorIs(t, err, ErrInvalidGameResult)

	broken = bytes.Clone(b)
	binary.LittleEndian.PutUint32(broken[start+8:], 0x30000004)
	_, err = ParseHeader(bytes.NewReader(broken))
	assert.ErrorIs(t, err, ErrInvalidGameMode)

	broken = bytes.Clone(b)
	binary.LittleEndian.PutUint32(broken[start:], 7)
	_, err = ParseHeader(bytes.NewReader(broken))
	assert.ErrorIs(t, err, ErrUnsupportedResultVersion)
}

func TestParseHeader_EveryTruncationIsAReadError(t *testing.T) {
	for _, version := range []uint32{3, 4, 5} {
		b := encode(t, sampleHeader(version))

		for n := 0; n < len(b); n++ {
			got, err := ParseHeader(bytes.NewReader(b[:n]))
			require.Nil(t, got, "version %d, %d bytes", version, n)
			require.ErrorIs(t, err, ErrIO, "version %d, %d bytes", version, n)

			var readErr *ReadError
			require.ErrorAs(t, err, &readErr)
			assert.LessOrEqual(t, readErr.Offset, int64(n))
		}
	}
}

func TestParseHeader_TruncatedResultData(t *testing.T) {
	b := encode(t, sampleHeader(5))
	cut := resultDataOffset(5) + 6

	_, err := ParseHeader(bytes.NewReader(b[:cut]))

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, fieldGameResult, readErr.Field)
	assert.Equal(t, resultDataOffset(5)+4, readErr.Offset)
	assert.Contains(t, err.Error(), "game result at offset 0x38")
}

func TestParseReplayFile(t *testing.T) {
	h := sampleHeader(5)

	replay, err := ParseReplayFile(bytes.NewReader(encode(t, h)))
	require.NoError(t, err)
	assert.Equal(t, *h, replay.Header)
	assert.Equal(t, int64(1534431629), replay.Header.Time().Unix())
}

func TestSupportedVersions(t *testing.T) {
	assert.Equal(t, []int{3, 4, 5}, SupportedVersions())
}
