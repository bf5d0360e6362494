package main

import (
	"github.com/joho/godotenv"

	"github.com/blackwell-systems/buchctl/internal/app"
)

// version is set by goreleaser via ldflags.
var version = "dev"

func main() {
	// A .env next to the binary overrides nothing already in the
	// environment; absence is not an error.
	_ = godotenv.Load()

	app.SetVersion(version)
	app.Execute()
}
