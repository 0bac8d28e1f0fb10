package main

import "github.com/battlesnakeio/arena/cmd/arena/commands"

func main() {
	commands.Execute()
}
