package dbschema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"visioneer-server/internal/domain/moodboard"
	"visioneer-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Moodboard{})
}

// Moodboard represents the database schema for moodboards
type Moodboard struct {
	BaseModel
	PublicID    string         `gorm:"uniqueIndex;size:64;not null"`
	UserID      uint           `gorm:"index:idx_moodboards_user;not null"`
	ProjectID   *string        `gorm:"index:idx_moodboards_project;size:64"`
	Story       string         `gorm:"type:text;not null"`
	Style       string         `gorm:"size:32;not null"`
	ImageCount  int            `gorm:"not null;default:4"`
	AspectRatio string         `gorm:"size:16;not null;default:'16:9'"`
	Concept     string         `gorm:"type:text"`
	Images      datatypes.JSON `gorm:"type:jsonb"`
	Degraded    bool           `gorm:"not null;default:false"`
	Status      string         `gorm:"size:32;not null;default:'completed'"`
	DeletedAt   *time.Time     `gorm:"index"`
}

// TableName specifies the table name for Moodboard
func (Moodboard) TableName() string {
	return "visioneer.moodboards"
}

// EtoD converts database schema to domain moodboard (Entity to Domain)
func (m *Moodboard) EtoD() (*moodboard.Moodboard, error) {
	var images []moodboard.Image
	if len(m.Images) > 0 {
		if err := json.Unmarshal(m.Images, &images); err != nil {
			return nil, err
		}
	}

	return &moodboard.Moodboard{
		ID:          m.ID,
		PublicID:    m.PublicID,
		UserID:      m.UserID,
		ProjectID:   m.ProjectID,
		Story:       m.Story,
		Style:       moodboard.Style(m.Style),
		ImageCount:  m.ImageCount,
		AspectRatio: m.AspectRatio,
		Concept:     m.Concept,
		Images:      images,
		Degraded:    m.Degraded,
		Status:      m.Status,
		DeletedAt:   m.DeletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// NewSchemaMoodboard converts a domain moodboard into a schema instance.
func NewSchemaMoodboard(b *moodboard.Moodboard) (*Moodboard, error) {
	var images datatypes.JSON
	if len(b.Images) > 0 {
		data, err := json.Marshal(b.Images)
		if err != nil {
			return nil, err
		}
		images = datatypes.JSON(data)
	}

	return &Moodboard{
		BaseModel: BaseModel{
			ID:        b.ID,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		},
		PublicID:    b.PublicID,
		UserID:      b.UserID,
		ProjectID:   b.ProjectID,
		Story:       b.Story,
		Style:       string(b.Style),
		ImageCount:  b.ImageCount,
		AspectRatio: b.AspectRatio,
		Concept:     b.Concept,
		Images:      images,
		Degraded:    b.Degraded,
		Status:      b.Status,
		DeletedAt:   b.DeletedAt,
	}, nil
}
