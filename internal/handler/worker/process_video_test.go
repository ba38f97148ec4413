package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/mock"
	"github.com/clipshift/shorts-ms-go/internal/task"
	"github.com/clipshift/shorts-ms-go/internal/usecase/video"
)

func TestProcessVideoHandler(t *testing.T) {
	svc := &mock.VideoProcessor{}
	id := db.NewUUID()

	if err := ProcessVideoHandler(context.Background(), task.ProcessVideoPayload{VideoID: id.String()}, svc); err != nil {
		t.Fatalf("ProcessVideoHandler: %v", err)
	}
	if !svc.Called || svc.ID != id {
		t.Error("expected the processor to run with the payload ID")
	}
}

func TestProcessVideoHandler_InvalidID(t *testing.T) {
	svc := &mock.VideoProcessor{}

	if err := ProcessVideoHandler(context.Background(), task.ProcessVideoPayload{VideoID: "nope"}, svc); err == nil {
		t.Fatal("expected an error for an invalid UUID")
	}
	if svc.Called {
		t.Error("the processor must not run for an invalid ID")
	}
}

func TestProcessVideoHandler_RunInProgressIsNotRetried(t *testing.T) {
	svc := &mock.VideoProcessor{Err: video.ErrRunInProgress}

	if err := ProcessVideoHandler(context.Background(), task.ProcessVideoPayload{VideoID: db.NewUUID().String()}, svc); err != nil {
		t.Fatalf("a duplicate trigger must be dropped, got %v", err)
	}
}

func TestProcessVideoHandler_FailurePropagates(t *testing.T) {
	boom := errors.New("pipeline down")
	svc := &mock.VideoProcessor{Err: boom}

	if err := ProcessVideoHandler(context.Background(), task.ProcessVideoPayload{VideoID: db.NewUUID().String()}, svc); !errors.Is(err, boom) {
		t.Fatalf("expected the failure to propagate for retry, got %v", err)
	}
}
