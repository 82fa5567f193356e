package main

import "itproger-bot/cmd"

func main() {
	cmd.Execute()
}
