package script

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/engine/anchor"
	"github.com/dshills/spacedlist/internal/logging"
)

// DefaultCallLimit caps the spaced calls of a single execution.
const DefaultCallLimit = 10_000_000

// State wraps a sandboxed gopher-lua state with the spaced module loaded.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes Go callers;
// Lua code itself always runs on the calling goroutine.
type State struct {
	L *lua.LState

	mu     sync.Mutex
	closed bool

	callLimit int64
	bias      anchor.Bias
	log       *logging.Logger

	sandbox *sandbox
	module  *module
}

// Option configures a State.
type Option func(*State)

// WithCallLimit sets the maximum spaced calls per execution. Zero or less
// disables the limit.
func WithCallLimit(limit int64) Option {
	return func(s *State) {
		s.callLimit = limit
	}
}

// WithBias sets the default bias of anchor sets created by scripts.
func WithBias(b anchor.Bias) Option {
	return func(s *State) {
		s.bias = b
	}
}

// WithLogger sets the logger print writes to.
func WithLogger(l *logging.Logger) Option {
	return func(s *State) {
		s.log = l
	}
}

// NewState creates a sandboxed Lua state with the spaced module registered.
func NewState(opts ...Option) *State {
	s := &State{
		callLimit: DefaultCallLimit,
		bias:      anchor.BiasLeft,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.OrNop(s.log).WithComponent("script")

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)

	s.sandbox = newSandbox(s.L, s.callLimit, s.log)
	s.sandbox.install()

	s.module = newModule(s.sandbox, s.bias, s.log)
	s.module.register(s.L)
	return s
}

// DoString executes code.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, func() error {
		return s.L.DoString(code)
	})
}

// DoFile executes the file at path.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.run(ctx, func() error {
		return s.L.DoFile(path)
	})
}

// run executes fn with the call counter reset and ctx attached so a
// cancelled context stops the VM.
func (s *State) run(ctx context.Context, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	s.sandbox.reset()

	if ctx.Done() != nil {
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("lua panic: %v", r)
		}
	}()

	err = fn()
	switch {
	case err == nil:
		return nil
	case s.sandbox.exceeded():
		return errors.Mark(err, ErrCallLimit)
	case ctx.Err() != nil:
		return errors.Wrapf(ctx.Err(), "script interrupted")
	}
	return err
}

// Exports returns the objects the script exported, sorted by name.
func (s *State) Exports() []Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.module.sortedExports()
}

// Output returns the lines printed so far.
func (s *State) Output() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sandbox.output...)
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
