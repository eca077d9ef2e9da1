package service

import (
	"go.uber.org/zap"

	"github.com/Aashish23092/soil-health-scanner/utils/soilcard"
)

// NewZapObserver forwards extraction diagnostics to l at debug level.
func NewZapObserver(l *zap.Logger) soilcard.Observer {
	return soilcard.ObserverFunc(func(e soilcard.Event) {
		l.Debug("soilcard: "+e.Stage,
			zap.String("parameter", e.Parameter),
			zap.String("token", e.Token),
			zap.Float64("score", e.Score),
			zap.String("reason", e.Reason),
		)
	})
}
