package updater

import (
	"context"
	"fmt"
	"io"

	"github.com/pink-tools/pink-jdk/internal/envstore"
	"github.com/pink-tools/pink-jdk/internal/result"
	"github.com/pink-tools/pink-otel"
)

// Exit codes. Negative values mirror what the requesting side looks for
// after normalizing the platform's exit status.
const (
	ExitOK              = 0
	ExitBadArgs         = -10
	ExitOperationFailed = -20
)

// Runner executes one helper invocation.
type Runner struct {
	Store   envstore.Store
	Mailbox *result.Mailbox
	// Notify is called after the stored value actually changed, once the
	// OK record is published. It may block for seconds.
	Notify func()
	Stdout io.Writer
	Stderr io.Writer
}

// Run handles args and returns the process exit code. Every failure past
// argument parsing is reported through the mailbox as well.
func (r *Runner) Run(args []string) int {
	ctx := context.Background()

	inv, err := ParseArgs(args)
	if err != nil {
		fmt.Fprintln(r.Stderr, err)
		return ExitBadArgs
	}
	if inv.Help {
		fmt.Fprintln(r.Stdout, Usage())
		return ExitOK
	}

	if inv.ID != "" {
		if err := r.Mailbox.Seed(inv.ID); err != nil {
			otel.Warn(ctx, "failed to seed result file", otel.Attr{K: "path", V: r.Mailbox.Path()}, otel.Attr{K: "error", V: err.Error()})
		}
	}

	otel.Info(ctx, "applying", otel.Attr{K: "id", V: inv.ID}, otel.Attr{K: "operations", V: fmt.Sprint(inv.Operations)})

	changed, err := envstore.Update(r.Store, inv.Operations)
	if err != nil {
		fmt.Fprintln(r.Stderr, err)
		otel.Error(ctx, "update failed", otel.Attr{K: "id", V: inv.ID}, otel.Attr{K: "error", V: err.Error()})
		r.publish(ctx, result.Record{ID: inv.ID, Outcome: result.ERR, Message: err.Error()})
		return ExitOperationFailed
	}

	if err := r.publish(ctx, result.Record{ID: inv.ID, Outcome: result.OK}); err != nil {
		return ExitOperationFailed
	}

	if changed && r.Notify != nil {
		r.Notify()
	}
	return ExitOK
}

func (r *Runner) publish(ctx context.Context, rec result.Record) error {
	err := r.Mailbox.Publish(rec)
	if err != nil {
		fmt.Fprintln(r.Stderr, err)
		otel.Error(ctx, "failed to write result file", otel.Attr{K: "path", V: r.Mailbox.Path()}, otel.Attr{K: "error", V: err.Error()})
	}
	return err
}
