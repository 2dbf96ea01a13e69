package common

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/inconshreveable/log15"
)

// Interrupt blocks until the process receives SIGINT or SIGTERM, or
// until `cancel` closes because another run.Group actor stopped first.
// The returned error tells the group why the node is going down.
func Interrupt(cancel <-chan struct{}, logger logging.Logger) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		logger.Info("stopping agora node", "signal", sig)
		return fmt.Errorf("received signal %s", sig)
	case <-cancel:
		return errors.New("canceled")
	}
}
