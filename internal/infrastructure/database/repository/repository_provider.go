package repository

import (
	"visioneer-server/internal/infrastructure/database/repository/moodboardrepo"
	"visioneer-server/internal/infrastructure/database/repository/projectrepo"
	"visioneer-server/internal/infrastructure/database/repository/usagerepo"
	"visioneer-server/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	moodboardrepo.NewMoodboardGormRepository,
	projectrepo.NewProjectGormRepository,
	usagerepo.NewUsageGormRepository,
	userrepo.NewUserGormRepository,
)
