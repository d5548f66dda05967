package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvr-ai/tranquil-trails/service"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Ask the chatbot one question",
		Long: `Chat sends the prompt to the chat model once, with the same sampling
parameters as the web page, and prints the answer.

Example:
  tranquil chat "Kapan waktu terbaik menanam cabai?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runChatCmd,
	}
}

func runChatCmd(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	if strings.TrimSpace(prompt) == "" {
		return service.ErrEmptyPrompt
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	generator := newGenerator(ctx, cfg.Generation)
	defer generator.Close()

	answer, err := service.NewChat(generator, log).Reply(ctx, prompt)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
