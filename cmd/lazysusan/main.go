package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// Local .env files carry the API key in development; absence is
	// not an error.
	godotenv.Load()

	Execute()
}
