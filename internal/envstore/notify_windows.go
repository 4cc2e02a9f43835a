//go:build windows

package envstore

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var procSendMessageTimeout = windows.NewLazySystemDLL("user32.dll").NewProc("SendMessageTimeoutW")

const (
	hwndBroadcast   = 0xFFFF
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002
)

// NotifyChanged broadcasts WM_SETTINGCHANGE so Explorer and newly started
// shells pick up the new PATH. Best-effort: windows that do not answer
// within 5s are skipped.
func NotifyChanged() {
	env, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return
	}
	procSendMessageTimeout.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(env)),
		uintptr(smtoAbortIfHung),
		uintptr(5000),
		0,
	)
}
