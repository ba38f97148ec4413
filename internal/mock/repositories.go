package mock

import (
	"context"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/model"
)

// VideoRepo implements video repository operations for tests.
type VideoRepo struct {
	VideoRecord *model.Video

	GetErr        error
	CreateErr     error
	UpdateErr     error
	TransitionErr error
	ListErr       error
	DeleteErr     error

	// TransitionOK is returned by TransitionStatus unless TransitionOKFn is set.
	TransitionOK   bool
	TransitionOKFn func(from []model.VideoStatus, to model.VideoStatus) bool

	ListOut    []db.UUID
	ListBefore time.Time

	GetCalled    bool
	Created      *model.Video
	Updated      *model.Video
	Transitions  []model.VideoStatus
	ListCalled   bool
	DeleteCalled bool
	DeletedID    db.UUID
}

func (m *VideoRepo) Create(ctx context.Context, video *model.Video) error {
	m.Created = video
	return m.CreateErr
}

func (m *VideoRepo) GetByID(ctx context.Context, id db.UUID) (*model.Video, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VideoRecord, nil
}

func (m *VideoRepo) Update(ctx context.Context, video *model.Video) error {
	m.Updated = video
	return m.UpdateErr
}

func (m *VideoRepo) TransitionStatus(ctx context.Context, id db.UUID, from []model.VideoStatus, to model.VideoStatus) (bool, error) {
	m.Transitions = append(m.Transitions, to)
	if m.TransitionErr != nil {
		return false, m.TransitionErr
	}
	if m.TransitionOKFn != nil {
		return m.TransitionOKFn(from, to), nil
	}
	return m.TransitionOK, nil
}

func (m *VideoRepo) ListProcessingBefore(ctx context.Context, before time.Time) ([]db.UUID, error) {
	m.ListCalled = true
	m.ListBefore = before
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *VideoRepo) DeleteCascade(ctx context.Context, id db.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

// ShortRepo implements short repository operations for tests.
type ShortRepo struct {
	ShortRecord *model.Short
	ListOut     []model.Short

	GetErr    error
	CreateErr error
	ListErr   error

	// CreateErrOn fails creation for the given 1-based call number only.
	CreateErrOn int

	GetCalled   bool
	Created     []*model.Short
	ListCalled  bool
	createCalls int
}

func (m *ShortRepo) Create(ctx context.Context, short *model.Short) error {
	m.createCalls++
	if m.CreateErrOn != 0 && m.createCalls == m.CreateErrOn {
		return m.CreateErr
	}
	if m.CreateErrOn == 0 && m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = append(m.Created, short)
	return nil
}

func (m *ShortRepo) GetByID(ctx context.Context, id db.UUID) (*model.Short, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.ShortRecord, nil
}

func (m *ShortRepo) ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.Short, error) {
	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

// SettingsRepo implements settings repository operations for tests.
type SettingsRepo struct {
	SettingsRecord *model.ProcessingSettings

	GetErr    error
	CreateErr error

	GetCalled bool
	Created   *model.ProcessingSettings
}

func (m *SettingsRepo) Create(ctx context.Context, settings *model.ProcessingSettings) error {
	m.Created = settings
	return m.CreateErr
}

func (m *SettingsRepo) GetByVideoID(ctx context.Context, videoID db.UUID) (*model.ProcessingSettings, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.SettingsRecord, nil
}

// CaptionRepo implements caption repository operations for tests.
type CaptionRepo struct {
	ListVideoOut []model.Caption
	ListShortOut []model.Caption

	CreateErr error
	ListErr   error

	Created         []*model.Caption
	ListVideoCalled bool
	ListShortCalled bool
}

func (m *CaptionRepo) Create(ctx context.Context, caption *model.Caption) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = append(m.Created, caption)
	return nil
}

func (m *CaptionRepo) ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.Caption, error) {
	m.ListVideoCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListVideoOut, nil
}

func (m *CaptionRepo) ListByShortID(ctx context.Context, shortID db.UUID) ([]model.Caption, error) {
	m.ListShortCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListShortOut, nil
}

// SegmentFailureRepo implements segment failure repository operations for tests.
type SegmentFailureRepo struct {
	ListOut []model.SegmentFailure

	CreateErr error
	ListErr   error

	Created    []*model.SegmentFailure
	ListCalled bool
}

func (m *SegmentFailureRepo) Create(ctx context.Context, failure *model.SegmentFailure) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = append(m.Created, failure)
	return nil
}

func (m *SegmentFailureRepo) ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.SegmentFailure, error) {
	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}
