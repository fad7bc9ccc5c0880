package main

import (
	"os"

	"github.com/scrylang/scry/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
