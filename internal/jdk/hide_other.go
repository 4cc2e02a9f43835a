//go:build !windows

package jdk

import "os/exec"

func hideWindow(*exec.Cmd) {}
