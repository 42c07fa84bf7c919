package main

import (
	"botosafe.io/infrastructure"
	"botosafe.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
