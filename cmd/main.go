package main

import (
	"letsstretch/internal/cli"
	"letsstretch/internal/ui/desktop"
)

func main() {
	cli.Main(desktop.Run)
}
