package commander

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Commander dispatches named commands to their executors.
type Commander struct {
	logs      *zap.SugaredLogger
	mu        sync.RWMutex
	executors map[string]Executor
}

func NewCommander(logger *zap.SugaredLogger) *Commander {
	return &Commander{
		logs:      logger,
		executors: make(map[string]Executor),
	}
}

// Register binds name to executor, replacing any previous binding.
func (c *Commander) Register(name string, executor Executor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.executors[name] = executor
}

// Execute runs the executor registered under name. The result is NotFound
// when there is none; otherwise it is Executed along with the executor's error.
func (c *Commander) Execute(ctx context.Context, name string, args []string) (ExecutionResult, error) {
	c.mu.RLock()
	executor, ok := c.executors[name]
	c.mu.RUnlock()

	if !ok {
		c.logs.Debugw("command not found", "command", name)
		return NotFound, nil
	}

	if err := executor.Execute(ctx, args); err != nil {
		c.logs.Debugw("command failed", "command", name, "error", err)
		return Executed, fmt.Errorf("%s: %w", name, err)
	}

	return Executed, nil
}

// Names returns the registered command names in sorted order.
func (c *Commander) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.executors))
	for name := range c.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
