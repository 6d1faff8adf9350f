package player

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Run shows the intro, auto-plays on clock, then serves events until ctx is
// done or events is closed. The ticker is stopped exactly once, after the
// last auto-play step or when the loop exits, whichever comes first.
func (p *Player) Run(ctx context.Context, clock Clock, events <-chan Event) error {
	p.Start()

	intro := clock.After(p.opts.IntroDelay)
	var ticker Ticker
	var tick <-chan time.Time
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-intro:
			intro = nil
			if p.BeginAutoPlay() {
				ticker = clock.NewTicker(p.opts.Tick)
				tick = ticker.C()
			}

		case <-tick:
			if !p.Tick() {
				stop()
			}

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := p.Handle(ev); err != nil {
				p.log.Debug("event rejected", zap.Stringer("event", ev), zap.Error(err))
			}
			if p.state == Interactive {
				intro = nil
				stop()
			}
		}
	}
}
