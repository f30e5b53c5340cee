package utils

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds a production logger unless ENV is dev.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("ENV") == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
