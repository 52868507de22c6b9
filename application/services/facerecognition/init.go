package facerecognition

import (
	"attendly.io/application/repository"
	"attendly.io/infrastructure/config"
	"attendly.io/infrastructure/database/repository/cache"
)

// InitialiseFaceService assembles the production service. The registry is a
// single owned instance whose lifecycle follows the process; nothing else
// holds cache state.
func InitialiseFaceService() {
	Service = NewFaceService(
		NewRegistry(mongoTemplateStore{}),
		repository.EmployeeDirectory{},
		mongoAttemptLogger{},
		&cache.Cache,
		config.Get().Face,
	)
}
