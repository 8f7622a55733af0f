package main

import "github.com/reidark/go-instagood/cmd/instagood/cmd"

func main() {
	cmd.Execute()
}
