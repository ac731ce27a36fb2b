package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"support-widget/internal/httpapi"
	"support-widget/internal/usecase"
)

func newChatCmd(envFile *string) *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant from the terminal",
		Long: `Read customer messages from stdin and print the assistant's replies.
Type 'exit' to quit. Every exchange is recorded to the client's transcript.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, _, err := bootstrap(ctx, *envFile)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			a.Start(ctx)

			if clientID == "" {
				clientID = a.Config.DefaultClientID
			}
			in := cmd.InOrStdin()
			return runChat(ctx, a.Chat, in, cmd.OutOrStdout(), chatSession{
				clientID:    clientID,
				sessionID:   uuid.NewString(),
				interactive: isInteractive(in),
			})
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "client id (default $CLIENT_ID)")
	return cmd
}

// isInteractive reports whether r is a terminal.
func isInteractive(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type chatSession struct {
	clientID    string
	sessionID   string
	interactive bool
}

// runChat is the console loop. Empty lines are skipped and "exit" ends the
// session.
func runChat(ctx context.Context, chat httpapi.ChatAnswerer, in io.Reader, out io.Writer, sess chatSession) error {
	if sess.interactive {
		fmt.Fprintf(out, "AI FAQ Assistant Ready. Client: %s\n", sess.clientID)
		fmt.Fprintln(out, "Using clients/<CLIENT_ID>/faq.txt for business information.")
		fmt.Fprint(out, "Type 'exit' to quit.\n\n")
	}

	scanner := bufio.NewScanner(in)
	for {
		if sess.interactive {
			fmt.Fprint(out, "Customer: ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return nil
		}

		res, err := chat.Answer(ctx, usecase.ChatInput{
			Message:   line,
			SessionID: sess.sessionID,
			ClientID:  sess.clientID,
		})
		if err != nil {
			fmt.Fprintf(out, "\nAssistant: (%s)\n\n", usecaseReason(err))
			continue
		}
		fmt.Fprintf(out, "\nAssistant: %s\n\n", res.Reply.Wire())
	}
}

func usecaseReason(err error) string {
	_, body := httpapi.ErrorStatus(err)
	if body.Reason != "" {
		return body.Reason
	}
	return body.Error
}
