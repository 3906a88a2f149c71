package main

import "github.com/resilscore/resilscore/cmd"

func main() {
	cmd.Execute()
}
