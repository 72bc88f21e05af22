package main

import "github.com/devlifthq/devlift/cmd"

func main() {
	cmd.Execute()
}
