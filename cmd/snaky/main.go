package main

import "github.com/mcoot/snakyhub/internal/cli"

func main() {
	cli.Execute()
}
