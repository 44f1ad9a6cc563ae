package socket

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client sends commands to a running instance
type Client struct {
	socketPath string
}

// FindRunningInstance returns the most recently created socket in dir and
// the PID encoded in its name
func FindRunningInstance(dir string) (string, int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "tuitree-*.sock"))
	if err != nil {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var newest string
	var newestTime time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = path, info.ModTime()
		}
	}
	if newest == "" {
		return "", 0, fmt.Errorf("no running tuitree instance found in %s", dir)
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newest), "tuitree-"), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}
	return newest, pid, nil
}

// NewClient creates a client for the socket at socketPath
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}
	return &Client{socketPath: socketPath}, nil
}

// Send sends msg and waits for the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(ReplyTimeout + time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}
	return &response, nil
}

// SendAdd asks the instance to append a node labelled text to the group at
// target, or the root when target is empty
func (c *Client) SendAdd(text, target string, group bool) (*Response, error) {
	command := CommandAddItem
	if group {
		command = CommandAddGroup
	}
	return c.Send(Message{Command: command, Text: text, Target: target})
}

// SendSelect asks the instance to select the best match for query
func (c *Client) SendSelect(query string) (*Response, error) {
	return c.Send(Message{Command: CommandSelect, Text: query})
}
