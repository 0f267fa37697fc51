package userrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"visioneer-server/internal/domain/user"
	"visioneer-server/internal/infrastructure/database/dbschema"
	"visioneer-server/internal/infrastructure/database/transaction"
	"visioneer-server/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) FindByIssuerAndSubject(ctx context.Context, issuer, subject string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("issuer = ? AND subject = ?", issuer, subject).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by issuer and subject",
			err,
			"9c41e7aa-08d2-4f1b-9a75-b8e3c27d504f",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by ID",
			err,
			"5fd0a2c3-6e17-4b84-9d26-f4a8b1c9e0d7",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) Upsert(ctx context.Context, usr *user.User) (*user.User, error) {
	schemaUser := dbschema.NewSchemaUser(usr)

	assignments := map[string]any{
		"auth_provider": schemaUser.AuthProvider,
		"username":      schemaUser.Username,
		"email":         schemaUser.Email,
		"name":          schemaUser.Name,
		"picture":       schemaUser.Picture,
		"updated_at":    gorm.Expr("NOW()"),
	}

	if err := repo.db.GetTx(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "issuer"}, {Name: "subject"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(schemaUser).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert user",
			err,
			"0e6b9d84-3f5a-47c2-8a19-d7c4e2f6b0a3",
		)
	}

	// Reload to capture ID and timestamps assigned by the database
	var persisted dbschema.User
	if err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("issuer = ? AND subject = ?", schemaUser.Issuer, schemaUser.Subject).
		First(&persisted).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to reload upserted user",
			err,
			"2a81f6c5-9b3d-4e07-b5f8-1c9d3a7e4f62",
		)
	}

	return persisted.EtoD(), nil
}
