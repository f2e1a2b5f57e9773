package audit

import "github.com/rs/zerolog"

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink persiste os eventos; em produção é o Logger do banco.
type Sink interface {
	Log(userID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	logger Sink
	log    zerolog.Logger
	queue  chan Event
}

func NewDispatcher(logger Sink, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch enfileira sem bloquear; fila cheia descarta o evento,
// auditoria nunca derruba a requisição.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
