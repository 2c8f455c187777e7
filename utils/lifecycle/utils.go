package lifecycle

type Instance interface {
	Close_()
	String() string
}

type Manager[T Instance] interface {
	Start(func(T) error) error
	Close()
}

type StartedAlreadyError struct{}

func (*StartedAlreadyError) Error() string {
	return "started already"
}

type StartedAfterCloseError struct{}

func (*StartedAfterCloseError) Error() string {
	return "start after close"
}
