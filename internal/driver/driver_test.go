package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service_print_receipt/internal/command"
	"service_print_receipt/internal/escpos"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FaultKind
	}{
		{
			name: "connection refused",
			err:  fmt.Errorf("dial: %w", syscall.ECONNREFUSED),
			want: FaultConnectionRefused,
		},
		{
			name: "permission denied",
			err:  fmt.Errorf("open: %w", syscall.EACCES),
			want: FaultPermissionDenied,
		},
		{
			name: "path error permission",
			err:  &os.PathError{Op: "open", Path: "/dev/usb/lp0", Err: syscall.EPERM},
			want: FaultPermissionDenied,
		},
		{
			name: "dial op error",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("no route to host")},
			want: FaultConnectionRefused,
		},
		{
			name: "anything else",
			err:  errors.New("paper jam"),
			want: FaultUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fault := classify(tt.err)
			assert.Equal(t, tt.want, fault.Kind)
			assert.ErrorIs(t, fault, tt.err)
		})
	}
}

func TestFaultError(t *testing.T) {
	f := &Fault{Kind: FaultConnectionRefused, Detail: "dial tcp 10.0.0.5:9100"}
	assert.Equal(t, "printer fault (connection refused): dial tcp 10.0.0.5:9100", f.Error())

	f = &Fault{Kind: FaultUnknown}
	assert.Equal(t, "printer fault (unknown)", f.Error())
}

func TestFileDriverWritesEncodedStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "printer.bin")
	d := NewFile(path, escpos.NewEncoder(0))

	seq := command.Sequence{command.Println{Text: "hello"}, command.Cut{}}
	require.NoError(t, d.Execute(context.Background(), seq))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, escpos.ResetBytes()))
	assert.Contains(t, string(got), "hello")

	// Reset appends another init command.
	require.NoError(t, d.Reset())
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, append(got, escpos.ResetBytes()...), after)
}

func TestFileDriverClassifiesOpenFailure(t *testing.T) {
	d := NewFile(filepath.Join(t.TempDir(), "no", "such", "dir", "lp0"), escpos.NewEncoder(0))

	err := d.Execute(context.Background(), command.Sequence{command.Cut{}})
	require.Error(t, err)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
}

func TestNetworkDriverRefusedConnection(t *testing.T) {
	// Grab a port that nothing listens on.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().(*net.TCPAddr)
	require.NoError(t, l.Close())

	d := NewNetwork("127.0.0.1", addr.Port, escpos.NewEncoder(0), nil)
	err = d.Execute(context.Background(), command.Sequence{command.Cut{}})
	require.Error(t, err)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, FaultConnectionRefused, fault.Kind)
}

func TestNetworkDriverWritesToListener(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		n, _ := conn.Read(buf)
		received <- buf[:n]
	}()

	addr := l.Addr().(*net.TCPAddr)
	d := NewNetwork("127.0.0.1", addr.Port, escpos.NewEncoder(0), nil)
	require.NoError(t, d.Execute(context.Background(), command.Sequence{command.Println{Text: "ping"}}))

	got := <-received
	assert.True(t, bytes.HasPrefix(got, escpos.ResetBytes()))
	assert.Contains(t, string(got), "ping")
}

func TestEmulatorRecordsJobs(t *testing.T) {
	d := NewEmulator()
	seq := command.Sequence{command.Println{Text: "a"}}
	require.NoError(t, d.Execute(context.Background(), seq))
	require.NoError(t, d.Reset())

	assert.Len(t, d.Executed(), 1)
	assert.Equal(t, seq, d.Executed()[0])
	assert.Equal(t, 1, d.Resets())
}
