package startup

import (
	"attendly.io/application/services/attendance"
	"attendly.io/application/services/facerecognition"
	"attendly.io/infrastructure/config"
	"attendly.io/infrastructure/database"
	"attendly.io/infrastructure/database/connection/datastore"
	"attendly.io/infrastructure/logger"
)

// Used to start services such as loggers, databases, caches, etc.
func StartServices() {
	logger.InitializeLogger()
	if _, err := config.Load(); err != nil {
		logger.Error("configuration failed to load", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		panic(err)
	}
	database.SetUpDatabase()
	facerecognition.InitialiseFaceService()
	attendance.InitialiseEngine()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
