package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing validates and runs deterministic Turing machines",
	Long: `Turing loads deterministic Turing machine definitions from YAML, JSON
or loam documents, validates them and runs them over input strings, from
the terminal, over HTTP or as MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError ends the process with a status but no message.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}
	var code exitError
	if errors.As(err, &code) {
		os.Exit(int(code))
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(cli.ExitError)
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "Directory containing the machine definitions")
	flags.String("source", cli.SourceFile, "Definition source: 'file' or 'loam'")
	flags.String("log-level", cli.DefaultLogLevel, "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("redis", "", "Redis URL for sessions (redis://host:port/db)")
	flags.String("session-key", "", "Seal stored sessions with this 32-byte key, hex or base64 (default: $"+cli.SessionKeyEnv+")")
}

func configFrom(cmd *cobra.Command) cli.Config {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	source, _ := flags.GetString("source")
	level, _ := flags.GetString("log-level")
	logFile, _ := flags.GetString("log-file")
	redisURL, _ := flags.GetString("redis")
	sessionKey, _ := flags.GetString("session-key")
	if sessionKey == "" {
		sessionKey = os.Getenv(cli.SessionKeyEnv)
	}
	return cli.Config{
		Dir:        dir,
		Source:     source,
		LogLevel:   level,
		LogFile:    logFile,
		RedisURL:   redisURL,
		SessionKey: sessionKey,
	}
}

func openWorkspace(cmd *cobra.Command) (*cli.Workspace, error) {
	return cli.Open(configFrom(cmd))
}
