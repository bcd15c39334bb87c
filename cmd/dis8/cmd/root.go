// Package cmd wires the dis8 binary's cobra command tree: disassemble
// and version.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dis8 [command]",
	Short: "dis8 is a CHIP-8 disassembler",
	Long:  "dis8 disassembles a CHIP-8 ROM into source text",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Unknown command. Try `dis8 help` for more information")
	},
}

func init() {
	rootCmd.AddCommand(disassembleCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the dis8 binary according to the user's
// command/subcommand/flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
