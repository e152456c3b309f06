package main

import (
	"os"

	"runtool/internal/cli"
)

func main() {
	os.Exit(cli.WhichMain(os.Args[1:]))
}
