package main

import "github.com/mvp-joe/project-pir/internal/cli"

func main() {
	cli.Execute()
}
