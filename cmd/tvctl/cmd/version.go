package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the tvctl CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tvctl version %s\n", version)
		fmt.Println("Command line access to a Tradervue trade journal")
		fmt.Println("https://github.com/rustyeddy/tradervue-go")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
