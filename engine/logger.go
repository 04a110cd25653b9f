package engine

import (
	"sync"

	"go.uber.org/zap"
)

var (
	pkgLogger  *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger used by engines created without WithLogger.
// It is a no-op logger; pass WithLogger to NewLocal for real output.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		pkgLogger = zap.NewNop()
	})
	return pkgLogger
}

// rejected records an operation that failed inside the engine. Failures
// surface to callers as bare result codes, so this is the one place the
// reason survives with context attached.
func (e *Local) rejected(op string, res Result, fields ...zap.Field) {
	if ce := e.log.Check(zap.DebugLevel, "engine rejected operation"); ce != nil {
		ce.Write(append([]zap.Field{
			zap.String("op", op),
			zap.Stringer("result", res),
		}, fields...)...)
	}
}
