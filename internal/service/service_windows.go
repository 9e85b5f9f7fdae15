//go:build windows

// Package service runs the print bridge as a Windows service on POS
// terminals, or in the foreground everywhere else.
package service

import (
	"time"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/debug"

	"service_print_receipt/internal/handlers"
)

type printBridge struct {
	srv *handlers.Server
}

func (b *printBridge) Execute(args []string, r <-chan svc.ChangeRequest, changes chan<- svc.Status) (bool, uint32) {
	const cmdsAccepted = svc.AcceptStop | svc.AcceptShutdown
	changes <- svc.Status{State: svc.StartPending}
	changes <- svc.Status{State: svc.Running, Accepts: cmdsAccepted}

	serverErr := make(chan error, 1)
	go func() {
		if err := b.srv.StartWithRetry(5, 10*time.Second); err != nil {
			serverErr <- err
		}
	}()

	for {
		select {
		case c := <-r:
			switch c.Cmd {
			case svc.Interrogate:
				changes <- c.CurrentStatus
			case svc.Stop, svc.Shutdown:
				return false, 0
			}
		case <-serverErr:
			return false, 1
		}
	}
}

// Interactive reports whether the process runs in a user session rather
// than under the service control manager.
func Interactive() (bool, error) {
	isService, err := svc.IsWindowsService()
	return !isService, err
}

// Run registers the server with the service control manager.
func Run(name string, srv *handlers.Server, isDebug bool) error {
	run := svc.Run
	if isDebug {
		run = debug.Run
	}
	return run(name, &printBridge{srv: srv})
}
