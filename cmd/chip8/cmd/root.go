// Package cmd wires the chip8 binary's cobra command tree: run and
// version, the same two-command shape as the teacher's cmd package.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chip8 [command]",
	Short: "chip8 is a CHIP-8 virtual machine",
	Long:  "chip8 loads and runs a CHIP-8 ROM in a window",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Unknown command. Try `chip8 help` for more information")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the chip8 binary according to the user's
// command/subcommand/flags. It is called through pixelgl.Run, which
// keeps the main thread for window operations while Execute runs.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
