package main

import "github.com/krlohnes/album-club-bot/cmd"

func main() {
	cmd.Execute()
}
