package main

import "github.com/dbuik1/talkingscores/cmd"

func main() {
	cmd.Execute()
}
