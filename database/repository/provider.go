package repository

import (
	"github.com/google/wire"
)

// RepositorySet bundles every repository provider for wire.
var RepositorySet = wire.NewSet(
	NewSettingRepository,
	NewUserRepository,
	NewBotUserRepository,
	NewAccessCodeRepository,
	NewVoiceRepository,
	NewUsageRepository,
)
