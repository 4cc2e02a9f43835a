package api

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// ErrNotRunning means no tray instance is listening.
var ErrNotRunning = errors.New("pink-jdk tray not running")

func Send(command, arg string) (string, error) {
	return SendTo(Addr(), command, arg)
}

func SendTo(addr, command, arg string) (string, error) {
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		return "", fmt.Errorf("%w (%s)", ErrNotRunning, addr)
	}
	defer conn.Close()

	_, err = fmt.Fprintf(conn, "%s:%s\n", command, arg)
	if err != nil {
		return "", fmt.Errorf("send failed: %w", err)
	}

	// No read deadline: a switch waits on the user's elevation prompt.
	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read failed: %w", err)
	}

	line = strings.TrimSpace(line)
	parts := strings.SplitN(line, ":", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid response")
	}

	status, msg := parts[0], parts[1]
	if status == "error" {
		return "", fmt.Errorf("%s", msg)
	}

	return msg, nil
}
