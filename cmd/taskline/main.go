package main

import "github.com/sandeepkv93/taskline/internal/cli"

func main() {
	cli.Execute()
}
