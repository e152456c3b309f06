package main

import (
	"os"

	"runtool/internal/cli"
)

func main() {
	os.Exit(cli.RunMain(os.Args[1:]))
}
