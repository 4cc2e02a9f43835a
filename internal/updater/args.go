// Package updater is the elevated side of a PATH switch: it parses the
// helper's command line, edits the machine PATH and reports the outcome
// through the result mailbox.
package updater

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/pink-tools/pink-jdk/internal/config"
	"github.com/pink-tools/pink-jdk/internal/pathlist"
)

var ErrArguments = errors.New("bad arguments")

// Invocation is a parsed helper command line.
type Invocation struct {
	ID         string
	Operations []pathlist.Operation
	Help       bool
}

const usage = `
Command line tool to edit the system's PATH variable.

Example:
  env-path-updater --remove "C:\path\1" --add "C:\path\2"

Args:
  -a, --add     Add a path to the variable.
  -r, --remove  Remove a path from the variable.
  -i, --id      Execution id, written to the result file.
  -h, --help    Print this help message.
`

func Usage() string {
	return usage
}

// operationValue queues an operation every time its flag appears. --add and
// --remove share one slice so the queue keeps the order of the whole
// command line, not just the order within each flag.
type operationValue struct {
	kind pathlist.Kind
	ops  *[]pathlist.Operation
}

func (v *operationValue) String() string { return "" }

func (v *operationValue) Type() string { return "path" }

func (v *operationValue) Set(path string) error {
	if path == "" {
		return fmt.Errorf("empty path for --%s", v.kind)
	}
	*v.ops = append(*v.ops, pathlist.Operation{Kind: v.kind, Path: path})
	return nil
}

// ParseArgs parses the helper grammar. No arguments at all is a request for
// help.
func ParseArgs(args []string) (*Invocation, error) {
	inv := &Invocation{}
	if len(args) == 0 {
		inv.Help = true
		return inv, nil
	}

	fs := pflag.NewFlagSet(config.UpdaterName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.VarP(&operationValue{kind: pathlist.KindAdd, ops: &inv.Operations}, "add", "a", "add a path to the variable")
	fs.VarP(&operationValue{kind: pathlist.KindRemove, ops: &inv.Operations}, "remove", "r", "remove a path from the variable")
	fs.StringVarP(&inv.ID, "id", "i", "", "execution id written to the result file")
	fs.BoolVarP(&inv.Help, "help", "h", false, "print help")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArguments, err)
	}
	if inv.Help {
		return &Invocation{Help: true}, nil
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unknown command %q", ErrArguments, fs.Arg(0))
	}
	return inv, nil
}

// Args renders an invocation back into helper arguments. The id goes last,
// after the operations, matching what the helper expects to stamp first.
func Args(id string, ops []pathlist.Operation) []string {
	args := make([]string, 0, len(ops)*2+2)
	for _, op := range ops {
		args = append(args, "--"+string(op.Kind), op.Path)
	}
	if id != "" {
		args = append(args, "--id", id)
	}
	return args
}
