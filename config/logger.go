package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from the log settings.
func NewLogger(l Log) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", l.Level)
	}
	logger.SetLevel(level)

	switch strings.ToLower(l.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unknown log format %q", l.Format)
	}

	return logger, nil
}
