package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chippy8/chippy8/cmd/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the installed chip8 version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(buildinfo.Version)
	},
}
