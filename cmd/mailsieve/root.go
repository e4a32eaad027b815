package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	mailsieve "github.com/mailsieve/client-go"
	"github.com/mailsieve/client-go/internal/config"
)

var (
	// Global flags
	cfgFile       string
	baseURL       string
	password      string
	encryptionKey string
	timeout       time.Duration
	retries       int
	noCompression bool
	jsonOutput    bool

	// Shared state set during PersistentPreRun
	client *mailsieve.Client
)

// rootCmd is the base command for mailsieve.
var rootCmd = &cobra.Command{
	Use:   "mailsieve",
	Short: "Scan messages and train the Bayes classifier via a mailsieve daemon",
	Long: `mailsieve submits messages to a mailsieve content-scanning daemon.
It supports plain and encrypted transports: configure the daemon's
public key to seal every request in an encrypted envelope.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Flags override the config file.
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		if password != "" {
			cfg.Password = password
		}
		if encryptionKey != "" {
			cfg.EncryptionKey = encryptionKey
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Timeout = config.Duration(timeout)
		}
		if cmd.Flags().Changed("retries") {
			cfg.Retries = retries
		}
		compression := cfg.Compression == nil || *cfg.Compression
		if noCompression {
			compression = false
		}

		opts := []mailsieve.Option{
			mailsieve.WithBaseURL(cfg.BaseURL),
			mailsieve.WithTimeout(time.Duration(cfg.Timeout)),
			mailsieve.WithRetries(cfg.Retries),
		}
		if cfg.Password != "" {
			opts = append(opts, mailsieve.WithPassword(cfg.Password))
		}
		if cfg.EncryptionKey != "" {
			opts = append(opts, mailsieve.WithEncryptionKey(cfg.EncryptionKey))
		}
		if !compression {
			opts = append(opts, mailsieve.WithoutCompression())
		}

		client, err = mailsieve.New(opts...)
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.mailsieve/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "daemon base URL (default http://localhost:11333)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "controller password")
	rootCmd.PersistentFlags().StringVar(&encryptionKey, "encryption-key", "", "daemon public key (base32); enables the encrypted transport")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", 0, "retry attempts for transient failures")
	rootCmd.PersistentFlags().BoolVar(&noCompression, "no-compress", false, "disable zstd compression")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON replies")
}

// execute runs the root command.
func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// readMessage returns the message bytes from the given path, or stdin
// when path is "-" or empty.
func readMessage(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
