package vote

import (
	logging "github.com/inconshreveable/log15"

	"agoranet.io/agora/lib/common"
)

var log logging.Logger = logging.New("module", "vote")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}
