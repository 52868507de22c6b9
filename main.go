package main

import (
	"attendly.io/infrastructure"
	"attendly.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
