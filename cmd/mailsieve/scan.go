package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	mailsieve "github.com/mailsieve/client-go"
)

var (
	scanFrom     string
	scanRcpt     []string
	scanIP       string
	scanUser     string
	scanHelo     string
	scanHostname string
	scanFilePath string
	scanHeaders  []string
)

var scanCmd = &cobra.Command{
	Use:   "scan [message-file]",
	Short: "Scan a message and print the daemon's verdict",
	Long: `Scan submits a message for scanning. The message is read from the
given file, or from stdin when no file (or "-") is given. With --file
the daemon reads the message from its own disk instead and no message
is transmitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var message []byte
		if scanFilePath == "" {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			var err error
			message, err = readMessage(path)
			if err != nil {
				return fmt.Errorf("read message: %w", err)
			}
		}

		opts, err := scanOptions()
		if err != nil {
			return err
		}
		result, err := client.Scan(cmd.Context(), message, opts...)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd, result)
		}
		printScanResult(cmd, result)
		return nil
	},
}

func scanOptions() ([]mailsieve.ScanOption, error) {
	var opts []mailsieve.ScanOption
	if scanFrom != "" {
		opts = append(opts, mailsieve.ScanFrom(scanFrom))
	}
	for _, rcpt := range scanRcpt {
		opts = append(opts, mailsieve.ScanRcpt(rcpt))
	}
	if scanIP != "" {
		opts = append(opts, mailsieve.ScanIP(scanIP))
	}
	if scanUser != "" {
		opts = append(opts, mailsieve.ScanUser(scanUser))
	}
	if scanHelo != "" {
		opts = append(opts, mailsieve.ScanHelo(scanHelo))
	}
	if scanHostname != "" {
		opts = append(opts, mailsieve.ScanHostname(scanHostname))
	}
	if scanFilePath != "" {
		opts = append(opts, mailsieve.ScanFile(scanFilePath))
	}
	for _, header := range scanHeaders {
		name, value, found := strings.Cut(header, ":")
		if !found {
			return nil, fmt.Errorf("invalid --header %q, want name:value", header)
		}
		opts = append(opts, mailsieve.ScanHeader(strings.TrimSpace(name), strings.TrimSpace(value)))
	}
	return opts, nil
}

func printScanResult(cmd *cobra.Command, result *mailsieve.ScanResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Action:   %s\n", result.Action)
	fmt.Fprintf(out, "Score:    %.2f / %.2f\n", result.Score, result.RequiredScore)
	if result.IsSkipped {
		fmt.Fprintln(out, "Skipped:  yes")
	}
	if result.MessageID != "" {
		fmt.Fprintf(out, "Message:  %s\n", result.MessageID)
	}

	if len(result.Symbols) > 0 {
		names := make([]string, 0, len(result.Symbols))
		for name := range result.Symbols {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(out, "Symbols:")
		for _, name := range names {
			sym := result.Symbols[name]
			fmt.Fprintf(out, "  %-30s %6.2f", name, sym.Score)
			if len(sym.Options) > 0 {
				fmt.Fprintf(out, "  [%s]", strings.Join(sym.Options, ", "))
			}
			fmt.Fprintln(out)
		}
	}
	if result.RewrittenBody != nil {
		fmt.Fprintf(out, "Rewritten body: %d bytes\n", len(result.RewrittenBody))
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	scanCmd.Flags().StringVar(&scanFrom, "from", "", "SMTP envelope sender")
	scanCmd.Flags().StringArrayVar(&scanRcpt, "rcpt", nil, "SMTP envelope recipient (repeatable)")
	scanCmd.Flags().StringVar(&scanIP, "ip", "", "source IP of the sending client")
	scanCmd.Flags().StringVar(&scanUser, "user", "", "authenticated username of the sending client")
	scanCmd.Flags().StringVar(&scanHelo, "helo", "", "HELO/EHLO string of the sending client")
	scanCmd.Flags().StringVar(&scanHostname, "hostname", "", "resolved hostname of the sending client")
	scanCmd.Flags().StringVar(&scanFilePath, "file", "", "path on the daemon's disk to scan instead of sending a message")
	scanCmd.Flags().StringArrayVar(&scanHeaders, "header", nil, "extra request header as name:value (repeatable)")
	rootCmd.AddCommand(scanCmd)
}
