package uploadform

import (
	"time"

	"pdf-upload-form/internal/domain"
)

// SystemClock hands out real time.Tickers.
type SystemClock struct{}

func (SystemClock) NewTicker(d time.Duration) domain.Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s *systemTicker) C() <-chan time.Time { return s.t.C }
func (s *systemTicker) Stop()               { s.t.Stop() }
