package imagepkg

import "go.uber.org/zap"

// provider is one strategy in a fallback chain.
type provider[T any] struct {
	name string
	get  func() (T, error)
}

// resolve tries providers in order and returns the first success, or
// fallback() when every provider fails. It never returns an error.
func resolve[T any](logger *zap.Logger, resource string, providers []provider[T], fallback func() T) T {
	for _, p := range providers {
		v, err := p.get()
		if err == nil {
			logger.Debug("resolved",
				zap.String("resource", resource),
				zap.String("provider", p.name))
			return v
		}
		logger.Debug("provider failed, trying next",
			zap.String("resource", resource),
			zap.String("provider", p.name),
			zap.Error(err))
	}
	logger.Debug("using built-in default", zap.String("resource", resource))
	return fallback()
}
