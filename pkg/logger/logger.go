package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Development builds get the console
// encoder, everything else the production JSON config.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
