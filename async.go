package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Future holds the result of a lookup that completes after a fixed delay.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// After schedules fn to run once delay has elapsed. The timer always fires.
func After[T any](delay time.Duration, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	time.AfterFunc(delay, func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("deferred lookup panicked")
				f.err = fmt.Errorf("%w: %v", ErrInternal, r)
			}
		}()
		f.val, f.err = fn()
	})
	return f
}

// Wait blocks until the future completes.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// AsyncQueryService runs every QueryService lookup behind an artificial delay.
type AsyncQueryService struct {
	query *QueryService
	delay time.Duration
}

func NewAsyncQueryService(query *QueryService, delay time.Duration) *AsyncQueryService {
	return &AsyncQueryService{query: query, delay: delay}
}

func (a *AsyncQueryService) ListAllAsync() *Future[map[string]Book] {
	return After(a.delay, func() (map[string]Book, error) {
		if err := a.ready(); err != nil {
			return nil, err
		}
		return a.query.ListAll()
	})
}

func (a *AsyncQueryService) FindByIDAsync(id string) *Future[Book] {
	return After(a.delay, func() (Book, error) {
		if err := a.ready(); err != nil {
			return Book{}, err
		}
		return a.query.FindByID(id)
	})
}

func (a *AsyncQueryService) FindByAuthorAsync(author string) *Future[[]BookEntry] {
	return After(a.delay, func() ([]BookEntry, error) {
		if err := a.ready(); err != nil {
			return nil, err
		}
		return a.query.FindByAuthor(author)
	})
}

func (a *AsyncQueryService) FindByTitleAsync(title string) *Future[[]BookEntry] {
	return After(a.delay, func() ([]BookEntry, error) {
		if err := a.ready(); err != nil {
			return nil, err
		}
		return a.query.FindByTitle(title)
	})
}

func (a *AsyncQueryService) GetReviewsAsync(id string) *Future[map[string]string] {
	return After(a.delay, func() (map[string]string, error) {
		if err := a.ready(); err != nil {
			return nil, err
		}
		return a.query.GetReviews(id)
	})
}

func (a *AsyncQueryService) ready() error {
	if a.query == nil {
		return fmt.Errorf("%w: query service is not configured", ErrInternal)
	}
	return nil
}
