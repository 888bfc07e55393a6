package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/togramago/melodygen/internal/cli"
)

func main() {
	_ = godotenv.Load()
	os.Exit(cli.Execute())
}
