package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/mealfinder/backend/internal/model"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// HistoryService stores completed searches
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record saves a search log entry
func (s *HistoryService) Record(ctx context.Context, entry *model.SearchLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// Recent lists the latest searches of a session, newest first
func (s *HistoryService) Recent(ctx context.Context, sessionID string, limit int) ([]model.SearchLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	logs := []model.SearchLog{}
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Order("seq DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	return logs, nil
}
