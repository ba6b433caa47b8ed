/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/longkey1/mahjong-chat/internal/mahjong"
	"github.com/longkey1/mahjong-chat/internal/mahjong/session"
	"github.com/spf13/cobra"
)

var (
	providerFlag string
	useEditor    bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the Mahjong AI a single question",
	Long: `Send one message to the Mahjong AI and print the reply.

For an interactive conversation, use 'mahjong-chat start' instead.

If no message is provided as an argument, it reads from stdin.
If --editor flag is set, it opens the default editor (from EDITOR environment variable) to compose the message.

The reply source is taken from the configuration (provider = "simulated" or "remote")
unless --provider is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		// Get message from arguments, editor, or stdin
		var message string
		if useEditor {
			message, err = getMessageFromEditor()
			if err != nil {
				return fmt.Errorf("getting message from editor: %w", err)
			}
		} else if len(args) > 0 {
			message = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			message = strings.TrimRight(string(input), "\r\n")
		}

		provider, err := newProvider(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating provider: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		store := session.New(provider, session.WithGreeting(cfg.Greeting), session.WithLogger(logger))
		defer store.Close()

		if !store.Submit(ctx, message) {
			return fmt.Errorf("chat request rejected: %w", mahjong.ErrEmptyInput)
		}
		store.Wait()

		reply := store.Last()
		if reply.IsError() {
			fmt.Fprintln(os.Stderr, reply.Content)
			return errors.New("chat request failed")
		}

		fmt.Println(reply.Content)
		return nil
	},
}

// getMessageFromEditor opens the default editor and returns the edited message
func getMessageFromEditor() (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return "", fmt.Errorf("EDITOR environment variable is not set")
	}

	// Create a temporary file
	tmpFile, err := os.CreateTemp("", "mahjong-chat-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %v", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	// Open the editor
	cmd := exec.Command(editor, tmpFile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to open editor: %v", err)
	}

	// Read the edited content
	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %v", err)
	}

	return strings.TrimRight(string(content), "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&providerFlag, "provider", "p", "", "Reply provider to use (simulated or remote)")
	chatCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Use default editor (from EDITOR environment variable) to compose message")
}
