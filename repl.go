package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/muhammadolammi/bulletdoctor/internal/dialogue"
	"github.com/muhammadolammi/bulletdoctor/internal/resume"
	"github.com/muhammadolammi/bulletdoctor/internal/session"
	"github.com/muhammadolammi/bulletdoctor/internal/tui"
)

// runREPL is the line-mode chat used with --plain: one turn per input line,
// model output streamed straight to out.
func runREPL(ctx context.Context, ctrl *dialogue.Controller, loader *resume.Loader, in io.Reader, out io.Writer) error {
	for _, m := range ctrl.Store().Transcript() {
		if m.Role == session.RoleAssistant {
			fmt.Fprintln(out, m.Content)
		}
	}

	var queue []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		cmd := tui.ParseCommand(line)
		switch cmd.Kind {
		case tui.CmdQuit:
			return nil
		case tui.CmdReset:
			ctrl.ResetBullets()
			fmt.Fprintln(out, "Bullets cleared.")
		case tui.CmdHelp:
			fmt.Fprintln(out, tui.HelpText)
		case tui.CmdUnknown:
			fmt.Fprintln(out, "Unknown command", cmd.Arg)
		case tui.CmdLoad:
			points, err := loader.Points(ctx, cmd.Arg)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				break
			}
			queue = append(queue, points...)
			fmt.Fprintf(out, "Queued %d rough points.\n", len(points))
		case tui.CmdNext:
			if len(queue) == 0 {
				fmt.Fprintln(out, "No queued rough points, /load a resume first.")
				break
			}
			next := queue[0]
			queue = queue[1:]
			fmt.Fprintln(out, next)
			replTurn(ctx, ctrl, next, out)
		default:
			replTurn(ctx, ctrl, line, out)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func replTurn(ctx context.Context, ctrl *dialogue.Controller, input string, out io.Writer) {
	streamed := false
	outcome, err := ctrl.Handle(ctx, input, func(chunk string) {
		streamed = true
		fmt.Fprint(out, chunk)
	})
	if streamed {
		fmt.Fprintln(out)
	}
	switch {
	case errors.Is(err, dialogue.ErrEmptyInput):
		return
	case err != nil:
		fmt.Fprintln(out, "error:", err)
		return
	}

	switch outcome.Kind {
	case dialogue.RoleCaptured, dialogue.BulletRejected:
		fmt.Fprintln(out, outcome.Reply)
	case dialogue.BulletAccepted:
		fmt.Fprintf(out, "Added to drafts (%d): %s\n", len(ctrl.Store().Bullets()), outcome.Bullet)
	}
}
