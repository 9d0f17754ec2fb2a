package commander

import "context"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name Executor . Executor
type Executor interface {
	Execute(ctx context.Context, args []string) error
}

// ExecutorFunc adapts a function to an Executor.
type ExecutorFunc func(ctx context.Context, args []string) error

func (f ExecutorFunc) Execute(ctx context.Context, args []string) error {
	return f(ctx, args)
}
