//go:build wireinject
// +build wireinject

package bootstrap

import (
	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/database/repository"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"

	"github.com/google/wire"
)

func InitializeApp() (*App, error) {
	wire.Build(
		database.GetDBProvider,
		repository.RepositorySet,
		service.ServiceSet,
		NewApp,
	)
	return nil, nil
}
