//go:build wireinject

package main

import (
	"github.com/google/wire"

	"visioneer-server/internal/domain"
	"visioneer-server/internal/infrastructure"
	"visioneer-server/internal/interfaces"
	"visioneer-server/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func CreateDataInitializer() (*DataInitializer, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		wire.Struct(new(DataInitializer), "*"),
	)
	return nil, nil
}
