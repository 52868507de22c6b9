package connection

import (
	"attendly.io/infrastructure/database/connection/cache"
	"attendly.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
