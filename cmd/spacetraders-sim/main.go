package main

import "github.com/andrescamacho/spacetraders-economy/internal/adapters/cli"

func main() {
	cli.Execute()
}
