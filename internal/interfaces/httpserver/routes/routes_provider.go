package routes

import (
	"github.com/google/wire"

	"visioneer-server/internal/interfaces/httpserver/handlers/moodboardhandler"
	"visioneer-server/internal/interfaces/httpserver/handlers/projecthandler"
	"visioneer-server/internal/interfaces/httpserver/handlers/sessionhandler"
	"visioneer-server/internal/interfaces/httpserver/handlers/usagehandler"
	v1 "visioneer-server/internal/interfaces/httpserver/routes/v1"
	"visioneer-server/internal/interfaces/httpserver/routes/v1/moodboards"
	"visioneer-server/internal/interfaces/httpserver/routes/v1/projects"
	"visioneer-server/internal/interfaces/httpserver/routes/v1/sessions"
	"visioneer-server/internal/interfaces/httpserver/routes/v1/usage"
)

var RouteProvider = wire.NewSet(
	// Handlers
	moodboardhandler.NewMoodboardHandler,
	projecthandler.NewProjectHandler,
	usagehandler.NewUsageHandler,
	sessionhandler.NewSessionHandler,

	// Routes
	v1.NewV1Route,
	moodboards.NewMoodboardRoute,
	projects.NewProjectRoute,
	usage.NewUsageRoute,
	sessions.NewSessionRoute,
)
