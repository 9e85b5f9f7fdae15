//go:build !windows

package service

import (
	"time"

	"service_print_receipt/internal/handlers"
)

// Interactive always reports true outside Windows; there is no service
// control manager to answer to.
func Interactive() (bool, error) {
	return true, nil
}

// Run starts the server in the foreground with the same retry discipline
// the Windows service uses.
func Run(name string, srv *handlers.Server, isDebug bool) error {
	return srv.StartWithRetry(5, 10*time.Second)
}
