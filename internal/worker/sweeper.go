package worker

import (
	"context"
	"time"
)

// BookingExpirer интерфейс уборки просроченных pending-броней
type BookingExpirer interface {
	ExpireStalePending(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновая уборка просроченных pending-броней
//
// Уборка - оптимизация, а не источник корректности: читатели и проверка
// конфликтов применяют lazy expiry сами. Sweeper лишь приводит хранимые
// статусы к наблюдаемым, чтобы просроченные hold не копились
type Sweeper struct {
	expirer  BookingExpirer
	interval time.Duration
	logger   Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSweeper создает новый экземпляр уборки
func NewSweeper(expirer BookingExpirer, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start запускает фоновый цикл уборки
func (s *Sweeper) Start() {
	go s.run()
	s.logger.Info("Sweeper: started with interval %s", s.interval)
}

// Stop останавливает уборку и дожидается завершения цикла
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.logger.Info("Sweeper: stopped")
}

func (s *Sweeper) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	expired, err := s.expirer.ExpireStalePending(ctx)
	if err != nil {
		s.logger.Error("Sweeper: sweep failed: %v", err)
		return
	}

	if expired > 0 {
		s.logger.Info("Sweeper: expired %d stale pending bookings", expired)
	}
}
