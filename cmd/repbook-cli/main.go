package main

import "github.com/claude/repbook/internal/cli"

func main() {
	cli.Execute()
}
