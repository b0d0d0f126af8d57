package main

import "github.com/codescope-dev/codescope/internal/cli"

func main() {
	cli.Execute()
}
