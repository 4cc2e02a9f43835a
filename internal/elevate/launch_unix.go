//go:build !windows

package elevate

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// Elevated launches through sudo. Credentials are confirmed before the
// helper starts, so a password prompt never eats into the time a caller
// waits for the helper's result, and a refusal fails the launch itself.
type Elevated struct{}

func New() *Elevated {
	return &Elevated{}
}

func (e *Elevated) Launch(ctx context.Context, program string, args []string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	if _, err := os.Stat(program); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	var cmd *exec.Cmd
	if os.Geteuid() == 0 {
		cmd = exec.Command(program, args...)
	} else {
		if err := confirmSudo(term.IsTerminal(int(os.Stdin.Fd()))); err != nil {
			return nil, err
		}
		sudoArgs := append([]string{"-n", "env"}, carriedEnv()...)
		sudoArgs = append(sudoArgs, program)
		cmd = exec.Command("sudo", append(sudoArgs, args...)...)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	h := NewHandle()
	go func() {
		cmd.Wait()
		if cmd.ProcessState == nil {
			h.Exited(-1)
			return
		}
		// Exit statuses are a single byte here; -10 arrives as 246.
		h.Exited(int(int8(cmd.ProcessState.ExitCode())))
	}()
	return h, nil
}

// confirmSudo prompts on a terminal. Without one it only checks for cached
// credentials, since "sudo -n" would otherwise exit before the helper runs.
func confirmSudo(interactive bool) error {
	var auth *exec.Cmd
	if interactive {
		auth = exec.Command("sudo", "-v")
		auth.Stdin = os.Stdin
		auth.Stdout = os.Stdout
		auth.Stderr = os.Stderr
	} else {
		auth = exec.Command("sudo", "-n", "true")
	}
	if err := auth.Run(); err != nil {
		return fmt.Errorf("%w: elevation was denied: %w", ErrLaunch, err)
	}
	return nil
}

// carriedEnv keeps the helper looking at the same app directory as the
// caller. sudo resets HOME and drops unknown variables.
func carriedEnv() []string {
	var env []string
	if home := os.Getenv("HOME"); home != "" {
		env = append(env, "HOME="+home)
	}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "PINK_JDK_") {
			env = append(env, kv)
		}
	}
	return env
}
