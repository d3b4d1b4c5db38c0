package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/widget"
)

var errExchangeFailed = errors.New("one or more questions failed")

// staticForm holds a single submission's text.
type staticForm struct {
	value string
}

func (f *staticForm) Value() string { return f.value }
func (f *staticForm) Clear()        { f.value = "" }

// printSurface writes each resolved entry as a log line.
type printSurface struct {
	out io.Writer
}

func (s printSurface) Append(msg chat.Message) {
	if msg.Sender == chat.SenderUser {
		fmt.Fprintln(s.out, msg.Line())
	}
}

func (s printSurface) Replace(msg chat.Message) {
	fmt.Fprintln(s.out, msg.Line())
}

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask one question, or one per stdin line when no question is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			questions := []string{strings.Join(args, " ")}
			if len(args) == 0 {
				var err error
				if questions, err = readQuestions(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return runAsk(ctx, a.asker(a.logger), a.widgetOptions(), questions, cmd.OutOrStdout())
		},
	}
}

// runAsk submits the questions one after another, as a user typing them would.
func runAsk(ctx context.Context, asker widget.Asker, opts widget.Options, questions []string, out io.Writer) error {
	ctrl := widget.New(ctx, asker, printSurface{out: out}, opts)
	defer ctrl.Close()

	failed := false
	for _, q := range questions {
		ex, err := ctrl.HandleSubmit(&staticForm{value: q})
		if err != nil {
			return err
		}
		if ex == nil {
			continue
		}
		if err := ex.Wait(ctx); err != nil {
			return err
		}
		if ex.Err() != nil {
			failed = true
		}
	}
	if failed {
		return errExchangeFailed
	}
	return nil
}

func readQuestions(r io.Reader) ([]string, error) {
	var questions []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		questions = append(questions, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return questions, nil
}
