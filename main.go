package main

import "agoricup/internal/cli"

func main() {
	cli.Execute()
}
