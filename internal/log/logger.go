// Package log owns the process-wide zap logger.
package log

import "go.uber.org/zap"

var base *zap.Logger

// Init builds the global logger: production JSON encoding when prod is
// true, the development console encoder otherwise.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	base = l
	zap.ReplaceGlobals(l)
	return l, nil
}

// L returns the global logger; a nop logger before Init so library code
// and tests never nil-panic.
func L() *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base
}

func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}
