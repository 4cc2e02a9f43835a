//go:build windows

package elevate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Elevated launches through ShellExecuteEx with the "runas" verb, which
// shows the UAC consent prompt.
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

	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = windows.EscapeArg(a)
	}

	verb, _ := windows.UTF16PtrFromString("runas")
	file, err := windows.UTF16PtrFromString(program)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	params, err := windows.UTF16PtrFromString(strings.Join(quoted, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	dir, _ := windows.UTF16PtrFromString(filepath.Dir(program))

	info := &windows.SHELLEXECUTEINFO{
		Mask:       windows.SEE_MASK_NOCLOSEPROCESS | windows.SEE_MASK_NOASYNC,
		Verb:       verb,
		File:       file,
		Parameters: params,
		Directory:  dir,
		Show:       windows.SW_HIDE,
	}
	info.Cb = uint32(unsafe.Sizeof(*info))

	if err := windows.ShellExecuteEx(info); err != nil {
		if errors.Is(err, windows.ERROR_CANCELLED) {
			return nil, fmt.Errorf("%w: elevation was denied", ErrLaunch)
		}
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	if info.Process == 0 {
		return nil, fmt.Errorf("%w: no process handle returned", ErrLaunch)
	}

	h := NewHandle()
	go func() {
		defer windows.CloseHandle(info.Process)
		if _, err := windows.WaitForSingleObject(info.Process, windows.INFINITE); err != nil {
			h.Exited(-1)
			return
		}
		var code uint32
		if err := windows.GetExitCodeProcess(info.Process, &code); err != nil {
			h.Exited(-1)
			return
		}
		h.Exited(int(int32(code)))
	}()
	return h, nil
}
