// Package lifecycle provides start-once/close-once managers for stage
// components holding external resources.
package lifecycle

import (
	"sync"

	"github.com/ugparu/gorga/utils/logger"
)

type defaultManager[T Instance] struct {
	instance  T
	startOnce sync.Once
	closeOnce sync.Once
	closeChan chan struct{}
}

// NewDefaultManager wraps an instance in a synchronous lifecycle: Start
// runs at most once and fails after Close, Close runs the instance
// teardown exactly once.
func NewDefaultManager[T Instance](instance T) Manager[T] {
	return &defaultManager[T]{
		instance:  instance,
		closeChan: make(chan struct{}),
	}
}

func (m *defaultManager[T]) Start(startFunc func(T) error) (err error) {
	select {
	case <-m.closeChan:
		return &StartedAfterCloseError{}
	default:
		err = &StartedAlreadyError{}
	}
	m.startOnce.Do(func() {
		logger.Debugf(m.instance, "Starting")
		err = startFunc(m.instance)
	})
	return err
}

func (m *defaultManager[T]) Close() {
	m.closeOnce.Do(func() {
		m.instance.Close_()
		close(m.closeChan)
	})
}
