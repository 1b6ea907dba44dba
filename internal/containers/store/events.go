package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/log"
	"github.com/zjrosen/hyperstore/internal/pubsub"
)

// ContainerEvent describes a change to a stored container. For deletes only
// Name is set.
type ContainerEvent struct {
	ID       uuid.UUID
	Name     string
	Status   domain.Status
	Template string
	At       time.Time
}

func eventFor(c *domain.Container) ContainerEvent {
	return ContainerEvent{
		ID:       c.ID(),
		Name:     c.Name(),
		Status:   c.Status(),
		Template: c.Template(),
		At:       c.UpdatedAt(),
	}
}

// notifyingRepository publishes a ContainerEvent after every write that
// changed a row.
type notifyingRepository struct {
	domain.ContainerRepository
	publisher pubsub.Publisher[ContainerEvent]
}

// NewNotifying returns next with change events published to publisher.
func NewNotifying(next domain.ContainerRepository, publisher pubsub.Publisher[ContainerEvent]) domain.ContainerRepository {
	return &notifyingRepository{ContainerRepository: next, publisher: publisher}
}

func (r *notifyingRepository) GetOrCreate(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, error) {
	c, _, err := r.Ensure(ctx, name, template, cfg)
	return c, err
}

func (r *notifyingRepository) Ensure(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, bool, error) {
	c, created, err := r.ContainerRepository.Ensure(ctx, name, template, cfg)
	if err == nil && created {
		r.publisher.Publish(pubsub.CreatedEvent, eventFor(c))
	}
	return c, created, err
}

func (r *notifyingRepository) Create(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, error) {
	c, err := r.ContainerRepository.Create(ctx, name, template, cfg)
	if err == nil {
		r.publisher.Publish(pubsub.CreatedEvent, eventFor(c))
	}
	return c, err
}

func (r *notifyingRepository) UpdateStatus(ctx context.Context, name string, status domain.Status) (int64, error) {
	n, err := r.ContainerRepository.UpdateStatus(ctx, name, status)
	if err != nil || n == 0 {
		return n, err
	}

	// Publish the stored row so subscribers see the new updatedAt.
	c, getErr := r.ContainerRepository.GetByName(ctx, name)
	if getErr != nil {
		log.Warn(log.CatRepo, "Status changed but container could not be reloaded for event", "name", name, "error", getErr)
		r.publisher.Publish(pubsub.UpdatedEvent, ContainerEvent{Name: name, Status: status, At: time.Now()})
		return n, nil
	}
	r.publisher.Publish(pubsub.UpdatedEvent, eventFor(c))
	return n, nil
}

func (r *notifyingRepository) Delete(ctx context.Context, name string) (int64, error) {
	n, err := r.ContainerRepository.Delete(ctx, name)
	if err == nil && n > 0 {
		r.publisher.Publish(pubsub.DeletedEvent, ContainerEvent{Name: name, At: time.Now()})
	}
	return n, err
}
