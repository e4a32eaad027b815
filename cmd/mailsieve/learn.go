package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	mailsieve "github.com/mailsieve/client-go"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Train the daemon's Bayes classifier",
}

var learnSpamCmd = &cobra.Command{
	Use:   "spam [message-file]",
	Short: "Learn a message as spam",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLearn(cmd, args, client.LearnSpam)
	},
}

var learnHamCmd = &cobra.Command{
	Use:   "ham [message-file]",
	Short: "Learn a message as ham",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLearn(cmd, args, client.LearnHam)
	},
}

func runLearn(cmd *cobra.Command, args []string,
	learn func(context.Context, []byte, ...mailsieve.ScanOption) (*mailsieve.LearnResult, error)) error {

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	message, err := readMessage(path)
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}

	result, err := learn(cmd.Context(), message)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd, result)
	}
	if result.Success {
		fmt.Fprintln(cmd.OutOrStdout(), "learned")
		return nil
	}
	if result.Error != "" {
		return fmt.Errorf("not learned: %s", result.Error)
	}
	return fmt.Errorf("not learned")
}

func init() {
	learnCmd.AddCommand(learnSpamCmd)
	learnCmd.AddCommand(learnHamCmd)
	rootCmd.AddCommand(learnCmd)
}
