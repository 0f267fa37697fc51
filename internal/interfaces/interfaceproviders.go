package interfaces

import (
	"github.com/google/wire"

	"visioneer-server/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
