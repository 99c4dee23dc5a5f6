// Package sockets speaks the local daemon request protocol: a unix
// stream socket carrying messages framed by a 4-byte little endian
// length prefix. A Socket is a call scoped resource; callers connect,
// exchange one request/response pair and close.
package sockets

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// MaxMessageSize bounds a single received frame. Replies larger than
// this indicate a corrupted length header rather than a real payload.
const MaxMessageSize = 64 * 1024 * 1024

// Socket is an open connection to a daemon request socket.
type Socket struct {
	conn net.Conn
}

// Connect opens the unix socket at path.
func Connect(path string) (*Socket, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", path, err)
	}
	return &Socket{conn: conn}, nil
}

// Send writes one length prefixed frame.
func (s *Socket) Send(payload []byte) error {
	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame[:4], uint32(len(payload)))
	copy(frame[4:], payload)
	if _, err := s.conn.Write(frame); err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	return nil
}

// Receive reads one length prefixed frame.
func (s *Socket) Receive() ([]byte, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(s.conn, header); err != nil {
		return nil, fmt.Errorf("receive response header: %w", err)
	}
	size := binary.LittleEndian.Uint32(header)
	if size > MaxMessageSize {
		return nil, fmt.Errorf("response length %d exceeds limit", size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(s.conn, payload); err != nil {
		return nil, fmt.Errorf("receive response payload: %w", err)
	}
	return payload, nil
}

// Close releases the connection. Safe to call on every exit path.
func (s *Socket) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
