package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/infra/memory"
	"github.com/m-mizutani/dirhook/pkg/usecase"
)

func TestScanUseCase_Lifecycle(t *testing.T) {
	ctx := context.Background()
	walker := &MockWalker{
		walkFunc: func(ctx context.Context) (*model.Snapshot, error) {
			return testSnapshot(), nil
		},
	}
	dispatcher := &deferredDispatcher{}
	uc := usecase.NewScan(walker, memory.NewScanRegistry(), usecase.WithScanDispatcher(dispatcher))

	task, err := uc.StartScan(ctx)
	gt.NoError(t, err)
	gt.Value(t, task.ID).NotEqual("")
	gt.Equal(t, task.Status, model.ScanStatusPending)
	gt.Equal(t, walker.Calls(), 0)

	_, err = uc.GetScanResult(ctx, task.ID, 1, 10)
	gt.True(t, errors.Is(err, model.ErrTaskPending))

	for _, err := range dispatcher.Flush(ctx) {
		gt.NoError(t, err)
	}
	gt.Equal(t, walker.Calls(), 1)

	page, err := uc.GetScanResult(ctx, task.ID, 1, 10)
	gt.NoError(t, err)
	gt.Equal(t, page.ProjectName, "project")
	gt.Equal(t, page.TotalFiles, 2)
	gt.A(t, page.Files).Length(2)

	page, err = uc.GetScanResult(ctx, task.ID, 2, 1)
	gt.NoError(t, err)
	gt.A(t, page.Files).Length(1)
	gt.Equal(t, page.Files[0].Folder, "sub")
}

func TestScanUseCase_Failure(t *testing.T) {
	ctx := context.Background()
	walker := &MockWalker{
		walkFunc: func(ctx context.Context) (*model.Snapshot, error) {
			return nil, errors.New("permission denied")
		},
	}
	dispatcher := &inlineDispatcher{}
	uc := usecase.NewScan(walker, memory.NewScanRegistry(), usecase.WithScanDispatcher(dispatcher))

	task, err := uc.StartScan(ctx)
	gt.NoError(t, err)
	gt.A(t, dispatcher.errs).Length(1)
	gt.Error(t, dispatcher.errs[0])

	_, err = uc.GetScanResult(ctx, task.ID, 1, 10)
	gt.True(t, errors.Is(err, model.ErrTaskFailed))
	gt.False(t, errors.Is(err, model.ErrTaskNotFound))
}

func TestScanUseCase_UnknownTask(t *testing.T) {
	uc := usecase.NewScan(&MockWalker{}, memory.NewScanRegistry())

	_, err := uc.GetScanResult(context.Background(), uuid.NewString(), 1, 10)
	gt.True(t, errors.Is(err, model.ErrTaskNotFound))
}

func TestScanUseCase_ConcurrentScansAreIndependent(t *testing.T) {
	ctx := context.Background()
	walker := &MockWalker{
		walkFunc: func(ctx context.Context) (*model.Snapshot, error) {
			return testSnapshot(), nil
		},
	}
	dispatcher := &inlineDispatcher{}
	uc := usecase.NewScan(walker, memory.NewScanRegistry(), usecase.WithScanDispatcher(dispatcher))

	first, err := uc.StartScan(ctx)
	gt.NoError(t, err)
	second, err := uc.StartScan(ctx)
	gt.NoError(t, err)

	gt.Value(t, first.ID).NotEqual(second.ID)
	gt.Equal(t, walker.Calls(), 2)
}

func TestScanUseCase_DetachedDispatch(t *testing.T) {
	walker := &MockWalker{
		walkFunc: func(ctx context.Context) (*model.Snapshot, error) {
			return testSnapshot(), nil
		},
	}
	uc := usecase.NewScan(walker, memory.NewScanRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	task, err := uc.StartScan(ctx)
	gt.NoError(t, err)
	// the scan must outlive the request that started it
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err := uc.GetScanResult(context.Background(), task.ID, 1, 10)
		if err == nil {
			break
		}
		gt.True(t, errors.Is(err, model.ErrTaskPending))
		if time.Now().After(deadline) {
			t.Fatal("scan did not complete within timeout")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
