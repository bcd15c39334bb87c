package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chippy8/chippy8/internal/chip8"
	"github.com/chippy8/chippy8/internal/hostaudio"
	"github.com/chippy8/chippy8/internal/hostio"
	"github.com/chippy8/chippy8/internal/hostkill"
)

var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a CHIP-8 ROM",
	Args:  cobra.ExactArgs(1),
	Run:   runChip8,
}

func runChip8(cmd *cobra.Command, args []string) {
	romPath := args[0]
	rom, err := os.ReadFile(romPath)
	if err != nil {
		fmt.Printf("error reading rom: %v\n", err)
		os.Exit(1)
	}

	win, err := hostio.NewWindow("chip8 - " + romPath)
	if err != nil {
		fmt.Printf("error creating window: %v\n", err)
		os.Exit(1)
	}

	tone, err := hostaudio.NewTone()
	if err != nil {
		fmt.Printf("error initializing audio: %v\n", err)
		os.Exit(1)
	}

	vm, err := chip8.NewVM(rom, win, win, hostkill.NewWindowKiller(win), tone, time.Now().UnixNano())
	if err != nil {
		fmt.Printf("error creating a new chip-8 VM: %v\n", err)
		os.Exit(1)
	}

	// A Ctrl-C or SIGTERM cancels ctx, which Exec propagates down into
	// any blocked Fx0A wait instead of leaving the process to hang.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := vm.Exec(ctx); err != nil {
		fmt.Printf("chip-8 execution error: %v\n", err)
		os.Exit(1)
	}
}
