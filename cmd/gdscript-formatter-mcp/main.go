package main

import "gdscriptmcp/internal/cli"

func main() {
	cli.Execute()
}
