package main

import (
	"os"

	"github.com/samvad-hq/answer-search/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
