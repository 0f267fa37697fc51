// Package dbschema holds the GORM persistence models and their
// conversions to and from the domain types.
package dbschema

import "time"

// BaseModel carries the columns shared by every table.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
