package main

import "reqmerge/internal/cli"

func main() {
	cli.Execute()
}
