package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chippy8/chippy8/internal/disasm"
)

var disassembleCmd = &cobra.Command{
	Use:   "disassemble [path/to/rom]",
	Short: "disassemble a CHIP-8 ROM to source text",
	Args:  cobra.MaximumNArgs(1),
	Run:   runDisassemble,
}

func runDisassemble(cmd *cobra.Command, args []string) {
	var src io.ReadCloser = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Printf("error opening rom: %v\n", err)
			os.Exit(1)
		}
		src = f
	}
	defer src.Close()

	if err := disasm.Disassemble(src, os.Stdout); err != nil {
		fmt.Printf("disassemble error: %v\n", err)
		os.Exit(1)
	}
}
