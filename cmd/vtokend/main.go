package main

import "github.com/vtoken-labs/vtoken/internal/cli"

func main() {
	cli.Execute()
}
