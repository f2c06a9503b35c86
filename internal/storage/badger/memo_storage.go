package badger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// MemoStorage implements the MemoStore interface for Badger
type MemoStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

var _ interfaces.MemoStore = (*MemoStorage)(nil)

// NewMemoStorage creates a new MemoStorage instance
func NewMemoStorage(db *BadgerDB, logger arbor.ILogger) *MemoStorage {
	return &MemoStorage{
		db:     db,
		logger: logger,
	}
}

func (s *MemoStorage) Save(record *models.MemoRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save memo: %w", err)
	}
	return nil
}

func (s *MemoStorage) Get(id string) (*models.MemoRecord, error) {
	var record models.MemoRecord
	if err := s.db.Store().Get(id, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrMemoNotFound, id)
		}
		return nil, fmt.Errorf("failed to get memo: %w", err)
	}
	return &record, nil
}

func (s *MemoStorage) List(limit int) ([]*models.MemoRecord, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.MemoRecord
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}

	result := make([]*models.MemoRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *MemoStorage) Close() error {
	return s.db.Close()
}
