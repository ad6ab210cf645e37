package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/cmd/cliconfig"
	"github.com/lovefest/lovefest_backend/internal/app"
	"github.com/lovefest/lovefest_backend/internal/service/chat"
)

func NewChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the event assistant from the terminal",
		Long: `Talk to the event assistant from the terminal.

Type a question and press enter. An empty line is ignored; Ctrl-D quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}
			gen, err := app.ProvideGenerator(cfg)
			if err != nil {
				return err
			}
			details, err := app.ProvideEventDetails(cfg)
			if err != nil {
				return err
			}

			svc := chat.New(gen, cfg.Chat.BotName, details)
			return converse(cmd.Context(), svc, cfg.Chat.BotName, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

// converse runs a session until in is exhausted, printing every new message.
func converse(ctx context.Context, svc chat.Service, bot string, in io.Reader, out io.Writer) error {
	sess := svc.Create(ctx)
	seen := printNew(out, bot, sess.Messages, 0)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var err error
		sess, err = svc.Send(ctx, sess.ID, text)
		if err != nil {
			return err
		}
		seen = printNew(out, bot, sess.Messages, seen)
	}
}

func printNew(out io.Writer, bot string, msgs []chat.Message, from int) int {
	for _, m := range msgs[from:] {
		if m.Sender == chat.SenderBot {
			fmt.Fprintf(out, "%s> %s\n", bot, m.Text)
		}
	}
	return len(msgs)
}
