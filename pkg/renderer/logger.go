package renderer

import (
	"go.uber.org/zap"

	"github.com/lumenshade/sppm/pkg/core"
)

// zapLogger implements core.Logger on top of a zap.SugaredLogger.
// Grounded on the teacher's DefaultLogger (pkg/renderer/progressive.go),
// generalized from a bare fmt.Printf wrapper to structured logging since
// the rest of the corpus (nicolasmd87-gopher3D, avatar29A-midgard-ro)
// reaches for zap rather than the stdlib log package.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// NewDefaultLogger builds a production zap logger (JSON to stderr,
// info level and above) wrapped as a core.Logger.
func NewDefaultLogger() core.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return &zapLogger{sugar: logger.Sugar()}
}
