package api

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/pink-tools/pink-otel"

	"github.com/pink-tools/pink-jdk/internal/config"
	"github.com/pink-tools/pink-jdk/internal/jdk"
)

// Handler is the running instance the commands act on.
type Handler interface {
	Switch(ctx context.Context, path string) error
	// Reload re-reads settings and the JDK list.
	Reload(ctx context.Context) error
	Current() (jdk.JDK, bool)
}

type Server struct {
	listener net.Listener
	handler  Handler
}

func NewServer(h Handler) (*Server, error) {
	return Listen(Addr(), h)
}

func Listen(addr string, h Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{listener: listener, handler: h}, nil
}

func Addr() string {
	return fmt.Sprintf("127.0.0.1:%d", config.Port())
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start serves until Close.
func (s *Server) Start() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	ctx := context.Background()

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		conn.Write([]byte("error:read failed\n"))
		return
	}

	line = strings.TrimSpace(line)
	parts := strings.SplitN(line, ":", 2)
	if len(parts) < 2 {
		conn.Write([]byte("error:invalid command format\n"))
		return
	}

	// Windows paths carry a drive colon; only the first colon splits.
	cmd, arg := parts[0], parts[1]
	otel.Info(ctx, "api", otel.Attr{K: "command", V: cmd}, otel.Attr{K: "arg", V: arg})

	switch cmd {
	case "switch":
		if err := s.handler.Switch(ctx, arg); err != nil {
			conn.Write([]byte(fmt.Sprintf("error:%s\n", oneLine(err))))
			return
		}
		conn.Write([]byte(fmt.Sprintf("ok:%s\n", arg)))

	case "reload":
		if err := s.handler.Reload(ctx); err != nil {
			conn.Write([]byte(fmt.Sprintf("error:%s\n", oneLine(err))))
			return
		}
		conn.Write([]byte("ok:reloaded\n"))

	case "current":
		j, ok := s.handler.Current()
		if !ok {
			conn.Write([]byte("error:no java on PATH\n"))
			return
		}
		conn.Write([]byte(fmt.Sprintf("ok:%s\n", j.Path)))

	default:
		conn.Write([]byte("error:unknown command\n"))
	}
}

func (s *Server) Close() {
	s.listener.Close()
}

func oneLine(err error) string {
	return strings.ReplaceAll(strings.ReplaceAll(err.Error(), "\r", " "), "\n", " ")
}
