package common

import (
	"testing"

	"github.com/stretchr/testify/require"

	agoracommon "agoranet.io/agora/lib/common"
)

func TestInterruptCanceled(t *testing.T) {
	cancel := make(chan struct{})
	errc := make(chan error, 1)

	go func() {
		errc <- Interrupt(cancel, agoracommon.NopLogger())
	}()

	close(cancel)
	err := <-errc
	require.Error(t, err)
	require.Equal(t, "canceled", err.Error())
}
