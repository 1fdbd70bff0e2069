// Command cftp draws exact samples from the Ising model by coupling from
// the past and reports them as JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/cftp/cftp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates an incomplete but valid run from outright failures.
func exitCode(err error) int {
	if errors.Is(err, cftp.ErrNotConverged) {
		return 2
	}
	return 1
}
