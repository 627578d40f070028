package main

import "josephlewis.net/minshell/cmd"

func main() {
	cmd.Execute()
}
