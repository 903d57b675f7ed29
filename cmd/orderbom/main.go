package main

import "github.com/vsinha/orderbom/pkg/interfaces/cli/commands"

func main() {
	commands.Execute()
}
