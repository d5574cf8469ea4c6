package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version string = "master" // Replaced by linker
var log = logrus.New()

func main() {
	log.SetLevel(logrus.InfoLevel)

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print version of huffpack",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:   "huffpack",
		Short: "huffpack compresses text files with Huffman codes",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug information")
	rootCmd.AddCommand(codecCmds...)
	rootCmd.AddCommand(cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
