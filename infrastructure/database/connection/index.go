package connection

import (
	"botosafe.io/infrastructure/database/connection/cache"
	"botosafe.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
