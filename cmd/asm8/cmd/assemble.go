package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chippy8/chippy8/internal/asm"
)

// defaultOutFileName matches original_source/src/asm8.c's
// DEFAULT_OUT_FILE_NAME: with no -o flag, assemble always writes a.out
// in the current directory, regardless of the source path.
const defaultOutFileName = "a.out"

var outPath string

var assembleCmd = &cobra.Command{
	Use:   "assemble path/to/source.asm",
	Short: "assemble CHIP-8 source into a ROM",
	Args:  cobra.ExactArgs(1),
	Run:   runAssemble,
}

func init() {
	assembleCmd.Flags().StringVarP(&outPath, "out", "o", defaultOutFileName, "output ROM path")
}

func runAssemble(cmd *cobra.Command, args []string) {
	srcPath := args[0]
	src, err := os.Open(srcPath)
	if err != nil {
		fmt.Printf("error opening source: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		fmt.Printf("error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer dst.Close()

	if err := asm.Assemble(src, dst); err != nil {
		fmt.Printf("assemble error: %v\n", err)
		os.Exit(1)
	}
}
