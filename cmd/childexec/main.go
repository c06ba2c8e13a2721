package main

import "github.com/jmgilman/go/internal/cli"

func main() {
	cli.Execute()
}
