package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealfinder/backend/internal/types"
)

// SearchLog records one completed recipe search
type SearchLog struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
	SessionID   string            `gorm:"size:64;not null;index" json:"-"`
	Seq         uint64            `json:"seq"`
	Query       string            `gorm:"size:255;not null" json:"query"`
	Term        string            `gorm:"size:255;not null" json:"term"`
	Outcome     types.OutcomeKind `gorm:"size:16;not null" json:"outcome"`
	ResultCount int               `json:"result_count"`
	RecipeIDs   JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"recipe_ids"`
	Error       string            `gorm:"type:text" json:"error,omitempty"`
	DurationMS  int64             `json:"duration_ms"`
	Stale       bool              `json:"stale"`
}

func (SearchLog) TableName() string {
	return "search_logs"
}

// BeforeCreate assigns the primary key, which sqlite cannot generate.
func (l *SearchLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
