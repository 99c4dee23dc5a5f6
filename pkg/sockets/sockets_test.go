package sockets

import (
	"encoding/binary"
	"io"
	"net"
	"path/filepath"
	"testing"
)

func listen(t *testing.T) (string, net.Listener) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daemon.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	return path, ln
}

func TestSocket_SendReceive(t *testing.T) {
	path, ln := listen(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		header := make([]byte, 4)
		if _, err := io.ReadFull(conn, header); err != nil {
			t.Errorf("server read header: %v", err)
			return
		}
		payload := make([]byte, binary.LittleEndian.Uint32(header))
		if _, err := io.ReadFull(conn, payload); err != nil {
			t.Errorf("server read payload: %v", err)
			return
		}
		if string(payload) != "getconfig syscheck" {
			t.Errorf("server received %q", payload)
		}

		reply := []byte("ok {}")
		frame := make([]byte, 4+len(reply))
		binary.LittleEndian.PutUint32(frame[:4], uint32(len(reply)))
		copy(frame[4:], reply)
		conn.Write(frame)
	}()

	s, err := Connect(path)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	if err := s.Send([]byte("getconfig syscheck")); err != nil {
		t.Fatalf("send: %v", err)
	}
	reply, err := s.Receive()
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if string(reply) != "ok {}" {
		t.Errorf("reply mismatch: %q", reply)
	}
	<-done
}

func TestSocket_ReceiveEmptyFrame(t *testing.T) {
	path, ln := listen(t)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.Write([]byte{0, 0, 0, 0})
	}()

	s, err := Connect(path)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	reply, err := s.Receive()
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if len(reply) != 0 {
		t.Errorf("expected empty payload, got %q", reply)
	}
}

func TestSocket_ReceiveRejectsOversizedLength(t *testing.T) {
	path, ln := listen(t)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		header := make([]byte, 4)
		binary.LittleEndian.PutUint32(header, MaxMessageSize+1)
		conn.Write(header)
	}()

	s, err := Connect(path)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	if _, err := s.Receive(); err == nil {
		t.Error("oversized length header should be rejected")
	}
}

func TestConnect_MissingSocket(t *testing.T) {
	if _, err := Connect(filepath.Join(t.TempDir(), "absent.sock")); err == nil {
		t.Error("connecting to an absent socket should fail")
	}
}

func TestClose_NilSafe(t *testing.T) {
	var s *Socket
	if err := s.Close(); err != nil {
		t.Errorf("nil close should be a no-op, got %v", err)
	}
}
