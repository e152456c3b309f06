package main

import "runtool/internal/cli"

func main() {
	cli.Execute()
}
