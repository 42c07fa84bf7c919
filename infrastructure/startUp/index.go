package startup

import (
	"botosafe.io/infrastructure/biometric"
	"botosafe.io/infrastructure/database"
	"botosafe.io/infrastructure/database/connection/datastore"
	"botosafe.io/infrastructure/logger"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	biometric.InitialiseBiometricService()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
