// internal/writer/modbus/client_test.go
package modbus

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"
)

func TestWriteRegisters_RejectsNonHoldingArea(t *testing.T) {
	c := &EndpointClient{}
	for _, area := range []byte{1, 2, 4} {
		if err := c.WriteRegisters(area, 1, 0, []uint16{1}); err == nil {
			t.Fatalf("area %d: expected error", area)
		}
	}
}

func TestWriteRegisters_EmptyIsNoop(t *testing.T) {
	c := &EndpointClient{}
	if err := c.WriteRegisters(areaHoldingRegisters, 1, 0, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestNewEndpointClient_RequiresEndpoint(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPackRegisters(t *testing.T) {
	got := packRegisters([]uint16{0x0102, 0xA0B0, 0})
	want := []byte{0x01, 0x02, 0xA0, 0xB0, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

// serveOneWrite accepts one FC16 request, hands the raw frame to frames
// and answers with the standard echo response.
func serveOneWrite(t *testing.T, ln net.Listener, frames chan<- []byte) {
	t.Helper()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetDeadline(time.Now().Add(2 * time.Second))

		hdr := make([]byte, 7)
		if _, err := io.ReadFull(conn, hdr); err != nil {
			return
		}
		pdu := make([]byte, binary.BigEndian.Uint16(hdr[4:6])-1)
		if _, err := io.ReadFull(conn, pdu); err != nil {
			return
		}
		frames <- append(append([]byte{}, hdr...), pdu...)

		resp := append([]byte{}, hdr[0:4]...)
		resp = append(resp, 0x00, 0x06, hdr[6])
		resp = append(resp, pdu[0:5]...)
		_, _ = conn.Write(resp)
	}()
}

func TestWriteRegisters_WireFrame(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	frames := make(chan []byte, 1)
	serveOneWrite(t, ln, frames)

	c, err := NewEndpointClient(Config{Endpoint: ln.Addr().String(), Timeout: time.Second})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if err := c.WriteRegisters(areaHoldingRegisters, 7, 40, []uint16{0x0102, 0xA0B0}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var frame []byte
	select {
	case frame = <-frames:
	case <-time.After(2 * time.Second):
		t.Fatalf("no frame received")
	}

	if frame[6] != 7 {
		t.Fatalf("unit id: got %d want 7", frame[6])
	}
	pdu := frame[7:]
	want := []byte{
		0x10,       // FC16
		0x00, 0x28, // address 40
		0x00, 0x02, // quantity
		0x04,       // byte count
		0x01, 0x02, 0xA0, 0xB0,
	}
	if !bytes.Equal(pdu, want) {
		t.Fatalf("pdu: got % x want % x", pdu, want)
	}
}
