package main

import (
	"os"

	"github.com/snipsterapp/snipster/src/internal/cli"
)

var (
	Version = "dev"
)

func main() {
	os.Exit(cli.Execute(Version))
}
