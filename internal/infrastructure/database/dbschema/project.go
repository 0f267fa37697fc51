package dbschema

import (
	"time"

	"visioneer-server/internal/domain/project"
	"visioneer-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Project{})
}

// Project represents the database schema for projects
type Project struct {
	BaseModel
	PublicID    string     `gorm:"uniqueIndex;size:64;not null"`
	UserID      uint       `gorm:"index:idx_projects_user;not null"`
	Title       string     `gorm:"size:100;not null"`
	Description string     `gorm:"size:500"`
	DeletedAt   *time.Time `gorm:"index"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "visioneer.projects"
}

// EtoD converts database schema to domain project (Entity to Domain)
func (p *Project) EtoD() *project.Project {
	return &project.Project{
		ID:          p.ID,
		PublicID:    p.PublicID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		DeletedAt:   p.DeletedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewSchemaProject converts a domain project into a schema instance.
func NewSchemaProject(p *project.Project) *Project {
	return &Project{
		BaseModel: BaseModel{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		PublicID:    p.PublicID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		DeletedAt:   p.DeletedAt,
	}
}
