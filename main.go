package main

import "github.com/mpapenbr/ghostlap-go/cmd"

func main() {
	cmd.Execute()
}
