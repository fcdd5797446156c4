package main

import (
	"os"

	"github.com/tychoish/lazy/internal/cli"
)

func main() {
	os.Exit(int(cli.Run()))
}
