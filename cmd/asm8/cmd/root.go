// Package cmd wires the asm8 binary's cobra command tree: assemble and
// version.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "asm8 [command]",
	Short: "asm8 is a CHIP-8 assembler",
	Long:  "asm8 assembles CHIP-8 source text into machine code",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Unknown command. Try `asm8 help` for more information")
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the asm8 binary according to the user's
// command/subcommand/flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
