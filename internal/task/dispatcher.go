package task

import (
	"context"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueProcessVideo(ctx context.Context, id db.UUID) error {
	t, err := NewProcessVideoTask(id.String())
	if err != nil {
		return err
	}
	// uniqueness backs up the database run lock so a double trigger never
	// even reaches a worker
	if _, err := d.client.EnqueueContext(ctx, t, asynq.MaxRetry(3), asynq.Unique(time.Hour)); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueGenerateCaptions(ctx context.Context, videoID db.UUID, shortID *db.UUID) error {
	var sid *string
	if shortID != nil {
		s := shortID.String()
		sid = &s
	}
	t, err := NewGenerateCaptionsTask(videoID.String(), sid)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.MaxRetry(3)); err != nil {
		return err
	}
	return nil
}
