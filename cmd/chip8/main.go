package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/chippy8/chippy8/cmd/chip8/cmd"
)

func main() {
	// pixelgl needs to own the main thread, so the real entry point
	// runs inside pixelgl.Run, same as the teacher's main.go.
	pixelgl.Run(cmd.Execute)
}
