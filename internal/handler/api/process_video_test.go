package api

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/mock"
	"github.com/clipshift/shorts-ms-go/internal/model"
)

func TestProcessVideoHandler(t *testing.T) {
	id := db.NewUUID()
	videos := &mock.VideoRepo{VideoRecord: &model.Video{ID: id}}
	tasks := &mock.Dispatcher{}
	handler := ProcessVideoHandler(videos, tasks)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithID(http.MethodPost, "/videos/"+id.String()+"/process", id))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d; want 202: %s", rec.Code, rec.Body.String())
	}
	if len(tasks.ProcessIDs) != 1 || tasks.ProcessIDs[0] != id {
		t.Errorf("enqueued %v; want [%s]", tasks.ProcessIDs, id)
	}
	if !strings.Contains(rec.Body.String(), `"started":true`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestProcessVideoHandler_NotFound(t *testing.T) {
	videos := &mock.VideoRepo{GetErr: sql.ErrNoRows}
	tasks := &mock.Dispatcher{}
	handler := ProcessVideoHandler(videos, tasks)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithID(http.MethodPost, "/videos/x/process", db.NewUUID()))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", rec.Code)
	}
	if tasks.ProcessCalled {
		t.Error("nothing must be enqueued for a missing video")
	}
}

func TestProcessVideoHandler_MissingID(t *testing.T) {
	handler := ProcessVideoHandler(&mock.VideoRepo{}, &mock.Dispatcher{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/videos/x/process", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", rec.Code)
	}
}

func TestProcessVideoHandler_EnqueueError(t *testing.T) {
	id := db.NewUUID()
	videos := &mock.VideoRepo{VideoRecord: &model.Video{ID: id}}
	tasks := &mock.Dispatcher{ProcessErr: errors.New("redis down")}
	handler := ProcessVideoHandler(videos, tasks)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithID(http.MethodPost, "/videos/x/process", id))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", rec.Code)
	}
}
