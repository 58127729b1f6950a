package main

import "github.com/milanbalazs/contsim/cmd"

func main() {
	cmd.Execute()
}
