// internal/writer/ingest/client_test.go
package ingest

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"
)

func TestBuildPacket(t *testing.T) {
	got := buildPacket(3, 7, 40, []uint16{0x0102, 0xA0B0})
	want := []byte{
		'R', 'I', 0x01, 0x03,
		0x00, 0x07,
		0x00, 0x28,
		0x00, 0x02,
		0x01, 0x02, 0xA0, 0xB0,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("packet mismatch:\n got=% x\nwant=% x", got, want)
	}
}

func TestWriteRegisters_RoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, headerLen+2)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		received <- buf
		_, _ = conn.Write([]byte{respOK})
	}()

	c, err := NewEndpointClient(Config{Endpoint: ln.Addr().String(), Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewEndpointClient: %v", err)
	}

	if err := c.WriteRegisters(3, 1, 20, []uint16{5}); err != nil {
		t.Fatalf("WriteRegisters: %v", err)
	}

	select {
	case pkt := <-received:
		if pkt[9] != 1 || pkt[11] != 5 {
			t.Fatalf("unexpected packet % x", pkt)
		}
	case <-time.After(time.Second):
		t.Fatalf("server did not receive packet")
	}
}

func TestWriteRegisters_Rejected(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = io.ReadFull(conn, make([]byte, headerLen+2))
		_, _ = conn.Write([]byte{respRejected})
	}()

	c, _ := NewEndpointClient(Config{Endpoint: ln.Addr().String(), Timeout: time.Second})
	if err := c.WriteRegisters(3, 1, 0, []uint16{1}); err == nil {
		t.Fatalf("expected rejection error")
	}
}
