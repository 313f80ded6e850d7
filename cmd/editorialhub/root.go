package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool

	cc := newCommandContext(&configFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:           "editorialhub",
		Short:         "Editorial anniversary dataset builder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return cc.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "editorialhub.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(newExtractCommand(cc))
	rootCmd.AddCommand(newScrapeCommand(cc))
	return rootCmd
}
