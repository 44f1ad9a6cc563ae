package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ReplyTimeout bounds how long a connection waits for the app to handle a
// command
const ReplyTimeout = 5 * time.Second

// DefaultDir returns the directory sockets are created in:
// $XDG_RUNTIME_DIR/tui-treeview, or ~/.local/share/tui-treeview
func DefaultDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "tui-treeview")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "tui-treeview")
}

// SocketName returns the socket file name for a process
func SocketName(pid int) string {
	return fmt.Sprintf("tuitree-%d.sock", pid)
}

// Server accepts commands from other processes on a Unix socket
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
	stopOnce   sync.Once
	logger     *log.Logger
}

// NewServer listens on dir/tuitree-<pid>.sock
func NewServer(dir string, pid int, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(dir, SocketName(pid))
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	logger.Info("socket server listening", "path", socketPath)

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10),
		stopChan:   make(chan struct{}),
		logger:     logger,
	}, nil
}

// Start begins accepting connections
func (s *Server) Start() {
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-s.stopChan:
				return
			default:
				s.logger.Warn("accept failed", "err", err)
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

// handleConnection reads one message, hands it to the app and writes the
// app's reply
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var msg Message
	if err := decoder.Decode(&msg); err != nil {
		if err != io.EOF {
			s.logger.Warn("invalid message", "err", err)
		}
		encoder.Encode(Response{Message: fmt.Sprintf("Invalid message format: %v", err)})
		return
	}

	switch msg.Command {
	case CommandAddItem, CommandAddGroup, CommandSelect:
	case "":
		encoder.Encode(Response{Message: "Missing command field"})
		return
	default:
		encoder.Encode(Response{Message: "Unknown command: " + msg.Command})
		return
	}

	msg.Reply = make(chan Response, 1)
	select {
	case s.msgChan <- msg:
	case <-s.stopChan:
		encoder.Encode(Response{Message: "Server is shutting down"})
		return
	}

	select {
	case response := <-msg.Reply:
		encoder.Encode(response)
	case <-time.After(ReplyTimeout):
		encoder.Encode(Response{Message: "Command timed out"})
	case <-s.stopChan:
		encoder.Encode(Response{Message: "Server is shutting down"})
	}
}

// Messages returns the channel of received commands. Each must be answered
// with Message.Respond.
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop closes the listener and removes the socket file
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.listener.Close()
		os.Remove(s.socketPath)
		s.logger.Info("socket server stopped")
	})
}
