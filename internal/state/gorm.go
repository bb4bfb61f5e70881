package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"complaint-intake-backend/internal/model"
)

// gormStore keeps dialogue state in the conversation_state table.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a database-backed dialogue state store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, userID string) (*Session, error) {
	var row model.ConversationState
	err := s.db.WithContext(ctx).Where("user_phone = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation state for %s: %w", userID, err)
	}

	return &Session{
		UserID:  row.UserID,
		Step:    Step(row.CurrentStep),
		Payload: decodePayload(row.CollectedData),
	}, nil
}

func (s *gormStore) Upsert(ctx context.Context, userID string, step Step, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", userID, err)
	}

	row := model.ConversationState{
		UserID:        userID,
		CurrentStep:   string(step),
		CollectedData: string(data),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_step", "collected_data"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert conversation state for %s: %w", userID, err)
	}
	return nil
}

func (s *gormStore) Clear(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).
		Where("user_phone = ?", userID).
		Delete(&model.ConversationState{}).Error
	if err != nil {
		return fmt.Errorf("clear conversation state for %s: %w", userID, err)
	}
	return nil
}
