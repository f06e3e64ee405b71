package main

import "github.com/mcoot/batepapo/internal/cli"

func main() {
	cli.Execute()
}
