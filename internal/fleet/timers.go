package fleet

import (
	"sync"
	"time"
)

// timerRegistry хранит отложенные переходы (стоянка на месте вызова,
// стоянка у больницы) по id машины. Новый таймер для машины отменяет
// предыдущий, чтобы устаревший таймер не сработал по обновленному состоянию.
type timerRegistry struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newTimerRegistry() *timerRegistry {
	return &timerRegistry{
		timers: make(map[string]*time.Timer),
	}
}

func (r *timerRegistry) schedule(vehicleID string, d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[vehicleID]; ok {
		t.Stop()
	}
	r.timers[vehicleID] = time.AfterFunc(d, fn)
}

func (r *timerRegistry) cancel(vehicleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[vehicleID]; ok {
		t.Stop()
		delete(r.timers, vehicleID)
	}
}

func (r *timerRegistry) stopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}
