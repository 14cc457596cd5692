package loom

import "sync"

// Middleware provides hooks around container resolution. Middleware
// can be used for logging, metrics, or testing.
type Middleware interface {
	// BeforeResolve is called before a top-level resolution.
	// Return error to abort resolution.
	BeforeResolve(key Key) error

	// AfterResolve is called after a top-level resolution.
	// Called even if resolution failed (instance and err may both be set).
	AfterResolve(key Key, instance any, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	mu         sync.RWMutex
	middleware []Middleware
}

func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{}
}

func (m *middlewareChain) add(mw Middleware) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.middleware = append(m.middleware, mw)
}

// beforeResolve calls BeforeResolve on all middleware in order.
func (m *middlewareChain) beforeResolve(key Key) error {
	m.mu.RLock()
	chain := m.middleware
	m.mu.RUnlock()

	for _, mw := range chain {
		if err := mw.BeforeResolve(key); err != nil {
			return err
		}
	}

	return nil
}

// afterResolve calls AfterResolve on all middleware in order.
func (m *middlewareChain) afterResolve(key Key, instance any, err error) error {
	m.mu.RLock()
	chain := m.middleware
	m.mu.RUnlock()

	for _, mw := range chain {
		if mwErr := mw.AfterResolve(key, instance, err); mwErr != nil {
			return mwErr
		}
	}

	return nil
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(key Key) error
	AfterResolveFunc  func(key Key, instance any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(key Key) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(key)
	}

	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(key Key, instance any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(key, instance, err)
	}

	return nil
}
