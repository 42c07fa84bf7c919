package env

import (
	"github.com/joho/godotenv"
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		// missing .env is fine in deployed environments
		return
	}
}
