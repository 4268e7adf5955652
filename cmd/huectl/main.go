package main

import "github.com/huectl/huectl/internal/cli"

func main() {
	cli.Execute()
}
