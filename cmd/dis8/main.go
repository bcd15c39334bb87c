package main

import "github.com/chippy8/chippy8/cmd/dis8/cmd"

func main() {
	cmd.Execute()
}
