package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for Tranquil Trails.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tranquil",
		Short: "Crop detection and farming chatbot for Indonesian farmers",
		Long: `Tranquil Trails serves a small web application with crop object detection
for paddy, chili and onion images and a text-generation chatbot.

The detect and chat commands run the same models from the terminal.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: ./tranquil.yaml or $XDG_CONFIG_HOME/tranquil-trails/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewDetectCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
