package store

import (
	"fmt"
	"time"

	"github.com/LtHummus/spyparsey/internal/batch"
	"github.com/LtHummus/spyparsey/spyparty"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ReplayRecord is one exported replay header. The id is the game id as a UUID so the same
// game saved twice ends up in the same row.
type ReplayRecord struct {
	ID                string    `gorm:"primaryKey;size:36"`
	GameID            string    `gorm:"size:32"`
	Path              string
	StartTime         time.Time `gorm:"index"`
	ReplayVersion     uint32
	SpyPartyVersion   uint32
	Duration          float32
	SpyUserName       string `gorm:"index"`
	SniperUserName    string `gorm:"index"`
	SpyDisplayName    *string
	SniperDisplayName *string
	Map               string `gorm:"index"`
	MapHash           uint32
	Mode              string
	Result            string
	Winner            string
	SelectedMissions  uint32
	PickedMissions    uint32
	CompletedMissions uint32
	Guests            *uint32
	ClockStart        *uint32
	UpdatedAt         time.Time
}

func (ReplayRecord) TableName() string {
	return "replays"
}

func NewReplayRecord(m batch.MatchedReplay) ReplayRecord {
	h := &m.Header
	return ReplayRecord{
		ID:                h.GameID.UUID().String(),
		GameID:            h.GameID.String(),
		Path:              m.Path,
		StartTime:         h.Time().UTC(),
		ReplayVersion:     h.ReplayVersion,
		SpyPartyVersion:   h.SpyPartyVersion,
		Duration:          h.Duration,
		SpyUserName:       h.SpyUserName,
		SniperUserName:    h.SniperUserName,
		SpyDisplayName:    h.SpyDisplayName,
		SniperDisplayName: h.SniperDisplayName,
		Map:               h.Result.Map.String(),
		MapHash:           h.Result.Map.Hash(),
		Mode:              h.Result.GameMode.String(),
		Result:            h.Result.GameResult.String(),
		Winner:            m.WinnerName(),
		SelectedMissions:  spyparty.PackMissions(h.Result.SelectedMissions),
		PickedMissions:    spyparty.PackMissions(h.Result.PickedMissions),
		CompletedMissions: h.Result.CompletedMissionsRaw,
		Guests:            h.Result.Guests,
		ClockStart:        h.Result.ClockStart,
	}
}

// Store writes replay headers to a SQLite file.
type Store struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	}
	s := &Store{DB: db, Logger: log}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			s.closeAfter(err)
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	if err := db.AutoMigrate(&ReplayRecord{}); err != nil {
		s.closeAfter(err)
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("Opened replay database")
	return s, nil
}

// closeAfter releases the connection once setup has failed with cause.
func (s *Store) closeAfter(cause error) {
	if err := s.Close(); err != nil {
		s.Logger.Warn().Err(err).AnErr("cause", cause).Msg("Failed to close replay database")
	}
}

// Save upserts the replays. Saving a game that is already there updates its row.
func (s *Store) Save(replays []batch.MatchedReplay) error {
	if len(replays) == 0 {
		return nil
	}

	records := make([]ReplayRecord, 0, len(replays))
	for _, r := range replays {
		records = append(records, NewReplayRecord(r))
	}

	err := s.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error
	if err != nil {
		return fmt.Errorf("failed to save replays: %w", err)
	}

	s.Logger.Info().Int("count", len(records)).Msg("Saved replays to database")
	return nil
}

func (s *Store) Count() (int64, error) {
	var n int64
	err := s.DB.Model(&ReplayRecord{}).Count(&n).Error
	return n, err
}

// Get looks up a game by id. It returns gorm.ErrRecordNotFound when there is no such game.
func (s *Store) Get(id spyparty.GameID) (*ReplayRecord, error) {
	var r ReplayRecord
	if err := s.DB.First(&r, "id = ?", id.UUID().String()).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
