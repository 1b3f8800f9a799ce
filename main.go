package main

import "dayplan/cmd"

func main() {
	cmd.Execute()
}
