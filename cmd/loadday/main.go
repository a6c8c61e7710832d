package main

import "github.com/pfrederiksen/loadday/internal/cli"

func main() {
	cli.Execute()
}
