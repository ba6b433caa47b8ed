package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/chzyer/readline"
	"github.com/longkey1/mahjong-chat/internal/mahjong"
	"github.com/longkey1/mahjong-chat/internal/mahjong/session"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an interactive chat",
	Long: `Start an interactive chat with the Mahjong AI.

The conversation lives in memory only. Use '/export <file>' to write a
transcript (JSON, or TOML when the file name ends in .toml) before leaving.

Examples:
  mahjong-chat start                 # Chat using the configured provider
  mahjong-chat start -p remote       # Chat with the remote AI endpoint`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		provider, err := newProvider(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating provider: %w", err)
		}

		store := session.New(provider, session.WithGreeting(cfg.Greeting), session.WithLogger(logger))
		defer store.Close()

		if err := runInteractiveMode(cmd.Context(), store); err != nil {
			return fmt.Errorf("interactive mode: %w", err)
		}
		return nil
	},
}

// runInteractiveMode reads user input until EOF or /exit
func runInteractiveMode(ctx context.Context, store *session.Store) error {
	fmt.Fprintf(os.Stderr, "\n=== Mahjong AI [%s] ===\n", store.ShortID())
	fmt.Fprintf(os.Stderr, "Provider: %s\n", store.ProviderName())
	fmt.Fprintf(os.Stderr, "Type '/help' for commands, '/exit', 'Ctrl+D' or 'Ctrl+C' to quit\n")
	fmt.Fprintf(os.Stderr, "========================\n\n")

	for _, msg := range store.Messages() {
		printMessage(msg)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "You> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "/exit",
		Stdout:          os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("creating line editor: %w", err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C on an empty line leaves, otherwise drop the line
			if input == "" {
				fmt.Fprintln(os.Stderr, "さようなら！")
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(os.Stderr, "さようなら！")
			break
		}
		if err != nil {
			return fmt.Errorf("input error: %w", err)
		}

		if strings.HasPrefix(strings.TrimSpace(input), "/") {
			if handleSpecialCommand(strings.TrimSpace(input), store) {
				continue
			}
			break
		}

		// Blank input is rejected by the store
		if !store.Submit(ctx, input) {
			continue
		}

		if isatty.IsTerminal(os.Stderr.Fd()) {
			done := make(chan bool)
			go showSpinner(done)
			store.Wait()
			done <- true
			close(done)
		} else {
			store.Wait()
		}

		printMessage(store.Last())
	}

	return nil
}

// printMessage renders one message with its sender label and time
func printMessage(msg mahjong.Message) {
	label := "You"
	if msg.Sender == mahjong.SenderAssistant {
		label = "AI"
	}
	stamp := msg.Timestamp.Format("15:04")

	if msg.IsError() {
		fmt.Fprintf(os.Stderr, "\n%s [%s] (error)> %s\n\n", label, stamp, msg.Content)
		return
	}
	fmt.Printf("\n%s [%s]> %s\n\n", label, stamp, msg.Content)
}

// showSpinner displays a spinner animation while waiting for response
func showSpinner(done chan bool) {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	i := 0
	for {
		select {
		case <-done:
			// Clear the spinner line
			fmt.Fprint(os.Stderr, "\r\033[K")
			return
		default:
			fmt.Fprintf(os.Stderr, "\r%s 考え中...", spinners[i])
			i = (i + 1) % len(spinners)
			time.Sleep(80 * time.Millisecond)
		}
	}
}

// handleSpecialCommand processes slash commands in interactive mode
// Returns true to continue the loop, false to exit
func handleSpecialCommand(input string, store *session.Store) bool {
	fields := strings.Fields(input)
	command := strings.ToLower(fields[0])

	switch command {
	case "/help", "/h":
		fmt.Fprintln(os.Stderr, "\nAvailable commands:")
		fmt.Fprintln(os.Stderr, "  /help, /h           - Show this help message")
		fmt.Fprintln(os.Stderr, "  /info, /i           - Show session information")
		fmt.Fprintln(os.Stderr, "  /history            - Show the whole conversation")
		fmt.Fprintln(os.Stderr, "  /reset, /r          - Start over from the greeting")
		fmt.Fprintln(os.Stderr, "  /export <file>      - Write a transcript (.json or .toml)")
		fmt.Fprintln(os.Stderr, "  /copy               - Copy the latest AI reply to the clipboard")
		fmt.Fprintln(os.Stderr, "  /clear, /c          - Clear screen (Unix/Linux only)")
		fmt.Fprintln(os.Stderr, "  /exit, /quit        - Exit interactive mode")
		fmt.Fprintln(os.Stderr, "  Ctrl+D              - Exit interactive mode")
		fmt.Fprintln(os.Stderr, "")
		return true

	case "/info", "/i":
		fmt.Fprintln(os.Stderr, "\nSession Information:")
		fmt.Fprintf(os.Stderr, "  ID: %s\n", store.ShortID())
		fmt.Fprintf(os.Stderr, "  Full ID: %s\n", store.ID())
		fmt.Fprintf(os.Stderr, "  Provider: %s\n", store.ProviderName())
		fmt.Fprintf(os.Stderr, "  Messages: %d\n", store.Len())
		fmt.Fprintln(os.Stderr, "")
		return true

	case "/history":
		for _, msg := range store.Messages() {
			printMessage(msg)
		}
		return true

	case "/reset", "/r":
		if !store.Reset() {
			fmt.Fprintln(os.Stderr, "A reply is still pending; try again once it arrives.")
			return true
		}
		printMessage(store.Last())
		return true

	case "/export":
		if len(fields) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: /export <file>")
			return true
		}
		transcript := store.Snapshot()
		if err := session.SaveTranscript(fields[1], transcript); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(os.Stderr, "Exported %d messages to %s\n", transcript.MessageCount(), fields[1])
		return true

	case "/copy":
		reply, ok := lastReply(store)
		if !ok {
			fmt.Fprintln(os.Stderr, "No AI reply to copy yet.")
			return true
		}
		if err := clipboard.WriteAll(reply.Content); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return true
		}
		fmt.Fprintln(os.Stderr, "Copied the latest reply to the clipboard.")
		return true

	case "/clear", "/c":
		fmt.Print("\033[H\033[2J")
		return true

	case "/exit", "/quit", "/q":
		fmt.Fprintln(os.Stderr, "さようなら！")
		return false

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s (type '/help' for available commands)\n", command)
		return true
	}
}

// lastReply returns the most recent non-error assistant message, skipping the greeting
func lastReply(store *session.Store) (mahjong.Message, bool) {
	msgs := store.Messages()
	for i := len(msgs) - 1; i > 0; i-- {
		if msgs[i].Sender == mahjong.SenderAssistant && !msgs[i].IsError() {
			return msgs[i], true
		}
	}
	return mahjong.Message{}, false
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&providerFlag, "provider", "p", "", "Reply provider to use (simulated or remote)")
}
