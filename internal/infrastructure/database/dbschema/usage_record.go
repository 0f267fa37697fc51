package dbschema

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"visioneer-server/internal/domain/usage"
	"visioneer-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(UsageRecord{})
}

// UsageRecord represents the database schema for usage ledger entries
type UsageRecord struct {
	BaseModel
	PublicID string          `gorm:"uniqueIndex;size:64;not null"`
	UserID   uint            `gorm:"index:idx_usage_records_user;not null"`
	Service  string          `gorm:"size:32;not null"`
	Provider string          `gorm:"size:64;not null"`
	Model    string          `gorm:"size:128"`
	Quantity int             `gorm:"not null;default:1"`
	CostUSD  decimal.Decimal `gorm:"type:numeric(12,6);not null;default:0"`
	Metadata datatypes.JSON  `gorm:"type:jsonb"`
}

// TableName specifies the table name for UsageRecord
func (UsageRecord) TableName() string {
	return "visioneer.usage_records"
}

// EtoD converts database schema to domain record (Entity to Domain)
func (r *UsageRecord) EtoD() (*usage.Record, error) {
	var metadata map[string]any
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return &usage.Record{
		ID:        r.ID,
		PublicID:  r.PublicID,
		UserID:    r.UserID,
		Service:   usage.ServiceKind(r.Service),
		Provider:  r.Provider,
		Model:     r.Model,
		Quantity:  r.Quantity,
		CostUSD:   r.CostUSD,
		Metadata:  metadata,
		CreatedAt: r.CreatedAt,
	}, nil
}

// NewSchemaUsageRecord converts a domain record into a schema instance.
func NewSchemaUsageRecord(rec *usage.Record) (*UsageRecord, error) {
	var metadata datatypes.JSON
	if len(rec.Metadata) > 0 {
		data, err := json.Marshal(rec.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = datatypes.JSON(data)
	}

	return &UsageRecord{
		BaseModel: BaseModel{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.CreatedAt,
		},
		PublicID: rec.PublicID,
		UserID:   rec.UserID,
		Service:  string(rec.Service),
		Provider: rec.Provider,
		Model:    rec.Model,
		Quantity: rec.Quantity,
		CostUSD:  rec.CostUSD,
		Metadata: metadata,
	}, nil
}
