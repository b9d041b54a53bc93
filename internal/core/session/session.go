// Package session composes the score engine, the signal detectors and the
// easter egg detector into one explicit per-session context.
package session

import (
	"log"
	"sync"

	"judgy/internal/core/attitude"
	"judgy/internal/core/behavior"
	"judgy/internal/core/clock"
	"judgy/internal/core/eggs"
	"judgy/internal/core/env"
	"judgy/internal/core/model"
)

// Session owns everything one reader's judgment needs. Sessions share no
// state, so several may run side by side.
type Session struct {
	Engine   *attitude.Engine
	Behavior *behavior.System
	Eggs     *eggs.Detector

	mu     sync.Mutex
	closed bool
}

// Option adjusts a session before its detectors are built.
type Option func(*behavior.Options)

// WithResizeRule scores resizes through rule.
func WithResizeRule(rule behavior.ResizeRule) Option {
	return func(options *behavior.Options) {
		options.ResizeRule = rule
	}
}

// New builds a session at score 0. The easter egg detector watches source
// from the start; the signal detectors wait for Start.
func New(clk clock.Clock, source env.Source, config model.Config, opts ...Option) *Session {
	options := behavior.Options{
		Scroll: config.Scroll,
		Click:  config.Click,
		Idle:   config.Idle,
	}
	for _, opt := range opts {
		opt(&options)
	}

	engine := attitude.New()
	return &Session{
		Engine:   engine,
		Behavior: behavior.NewSystem(options, engine, source, clk),
		Eggs:     eggs.New(engine, source, clk, config.Eggs),
	}
}

// Start begins judging.
func (session *Session) Start() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		log.Printf("session: start after close")
		return
	}
	session.Behavior.Start()
}

// Pause stops the signal detectors. Score and easter egg bookkeeping are kept.
func (session *Session) Pause() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return
	}
	session.Behavior.Stop()
}

// Resume restarts the signal detectors with fresh per-run state.
func (session *Session) Resume() {
	session.Start()
}

// Paused reports whether the signal detectors are stopped.
func (session *Session) Paused() bool {
	return !session.Behavior.Running()
}

// Snapshot returns the current score and level.
func (session *Session) Snapshot() attitude.Snapshot {
	return session.Engine.Snapshot()
}

// Close stops every detector and cancels every timer. Later calls do nothing.
func (session *Session) Close() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return
	}
	session.closed = true
	session.Behavior.Stop()
	session.Eggs.Destroy()
}
