package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/mocks"
	"github.com/zjrosen/hyperstore/internal/pubsub"
)

func newNotifyingRepo(t *testing.T) (*mocks.MockContainerRepository, domain.ContainerRepository, <-chan pubsub.Event[ContainerEvent]) {
	t.Helper()
	repoMock := mocks.NewMockContainerRepository(t)
	broker := pubsub.NewBroker[ContainerEvent]()
	t.Cleanup(broker.Close)
	events := broker.Subscribe(context.Background())
	return repoMock, NewNotifying(repoMock, broker), events
}

func TestNotifying_EnsurePublishesOnlyOnInsert(t *testing.T) {
	repoMock, repo, events := newNotifyingRepo(t)
	ctx := context.Background()
	web := container("web-1", domain.StatusStopped)

	repoMock.EXPECT().Ensure(mock.Anything, "web-1", "alpine", domain.Config{}).Return(web, true, nil).Once()
	repoMock.EXPECT().Ensure(mock.Anything, "web-1", "alpine", domain.Config{}).Return(web, false, nil).Once()

	_, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)

	event := recv(t, events)
	require.Equal(t, pubsub.CreatedEvent, event.Type)
	require.Equal(t, web.ID(), event.Payload.ID)
	require.Equal(t, "web-1", event.Payload.Name)
	require.Equal(t, domain.StatusStopped, event.Payload.Status)

	_, err = repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)
	requireNoEvent(t, events)
}

func TestNotifying_CreatePublishes(t *testing.T) {
	repoMock, repo, events := newNotifyingRepo(t)
	db := container("db-1", domain.StatusStopped)

	repoMock.EXPECT().Create(mock.Anything, "db-1", "alpine", domain.Config{}).Return(db, nil).Once()
	repoMock.EXPECT().Create(mock.Anything, "db-1", "alpine", domain.Config{}).
		Return(nil, &domain.AlreadyExistsError{Name: "db-1"}).Once()

	_, err := repo.Create(context.Background(), "db-1", "alpine", domain.Config{})
	require.NoError(t, err)
	require.Equal(t, pubsub.CreatedEvent, recv(t, events).Type)

	_, err = repo.Create(context.Background(), "db-1", "alpine", domain.Config{})
	require.Error(t, err)
	requireNoEvent(t, events)
}

func TestNotifying_UpdateStatusPublishesReloadedRow(t *testing.T) {
	repoMock, repo, events := newNotifyingRepo(t)
	running := container("web-1", domain.StatusRunning)

	repoMock.EXPECT().UpdateStatus(mock.Anything, "web-1", domain.StatusRunning).Return(int64(1), nil).Once()
	repoMock.EXPECT().GetByName(mock.Anything, "web-1").Return(running, nil).Once()

	n, err := repo.UpdateStatus(context.Background(), "web-1", domain.StatusRunning)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	event := recv(t, events)
	require.Equal(t, pubsub.UpdatedEvent, event.Type)
	require.Equal(t, running.ID(), event.Payload.ID)
	require.Equal(t, domain.StatusRunning, event.Payload.Status)
}

func TestNotifying_UpdateStatusReloadFailureStillPublishes(t *testing.T) {
	repoMock, repo, events := newNotifyingRepo(t)

	repoMock.EXPECT().UpdateStatus(mock.Anything, "web-1", domain.StatusFrozen).Return(int64(1), nil).Once()
	repoMock.EXPECT().GetByName(mock.Anything, "web-1").Return(nil, &domain.NotFoundError{Key: "web-1"}).Once()

	_, err := repo.UpdateStatus(context.Background(), "web-1", domain.StatusFrozen)
	require.NoError(t, err, "the write succeeded")

	event := recv(t, events)
	require.Equal(t, "web-1", event.Payload.Name)
	require.Equal(t, domain.StatusFrozen, event.Payload.Status)
}

func TestNotifying_NoEventWhenNothingChanged(t *testing.T) {
	repoMock, repo, events := newNotifyingRepo(t)
	ctx := context.Background()

	repoMock.EXPECT().UpdateStatus(mock.Anything, "ghost", domain.StatusRunning).Return(int64(0), nil).Once()
	repoMock.EXPECT().Delete(mock.Anything, "ghost").Return(int64(0), nil).Once()
	repoMock.EXPECT().Delete(mock.Anything, "web-1").
		Return(int64(0), &domain.StorageError{Op: "delete container", Err: errors.New("database is locked")}).Once()

	_, err := repo.UpdateStatus(ctx, "ghost", domain.StatusRunning)
	require.NoError(t, err)
	_, err = repo.Delete(ctx, "ghost")
	require.NoError(t, err)
	_, err = repo.Delete(ctx, "web-1")
	require.Error(t, err)

	requireNoEvent(t, events)
}

func TestNotifying_DeletePublishes(t *testing.T) {
	repoMock, repo, events := newNotifyingRepo(t)

	repoMock.EXPECT().Delete(mock.Anything, "web-1").Return(int64(1), nil).Once()

	_, err := repo.Delete(context.Background(), "web-1")
	require.NoError(t, err)

	event := recv(t, events)
	require.Equal(t, pubsub.DeletedEvent, event.Type)
	require.Equal(t, "web-1", event.Payload.Name)
}

func TestNotifying_ReadsPassThrough(t *testing.T) {
	repoMock, repo, events := newNotifyingRepo(t)
	web := container("web-1", domain.StatusStopped)

	repoMock.EXPECT().GetByName(mock.Anything, "web-1").Return(web, nil).Once()
	repoMock.EXPECT().List(mock.Anything).Return([]*domain.Container{web}, nil).Once()
	repoMock.EXPECT().Exists(mock.Anything, "web-1").Return(true, nil).Once()

	_, err := repo.GetByName(context.Background(), "web-1")
	require.NoError(t, err)
	_, err = repo.List(context.Background())
	require.NoError(t, err)
	_, err = repo.Exists(context.Background(), "web-1")
	require.NoError(t, err)

	requireNoEvent(t, events)
}
