/*
Copyright © 2025 huduassist
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "huduassist-be",
	Short: "HuduAssist KE backend",
	Long: `Backend for HuduAssist KE: upload a PDF document, build a retrieval
index over its text, and answer questions either against that document or as
a general Kenyan Government services assistant.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
}
