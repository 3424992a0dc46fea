package utils

import (
	"io"

	"github.com/MrSnakeDoc/codex/internal/logger"
)

// CloseLogged closes c and logs the outcome under name.
// Use for shutdown paths where a close error must not abort the rest.
func CloseLogged(log logger.Logger, name string, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
		return
	}
	log.Info("closed cleanly", logger.String("resource", name))
}
