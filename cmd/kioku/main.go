package main

import "github.com/kioku-ai/kioku/cmd/kioku/cli"

func main() {
	cli.Execute()
}
