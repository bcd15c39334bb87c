package main

import "github.com/chippy8/chippy8/cmd/asm8/cmd"

func main() {
	cmd.Execute()
}
