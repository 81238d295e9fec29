// Command apidoc generates HTML API documentation from Markdown reference pages.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/tessro/apidoc/internal/cli"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()
	os.Exit(cli.Execute())
}
