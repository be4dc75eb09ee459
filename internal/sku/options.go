package sku

// Option configures a Selector.
type Option func(*Selector)

// WithListener sets the listener notified of selection outcomes.
func WithListener(l Listener) Option {
	return func(s *Selector) {
		if l != nil {
			s.listener = l
		}
	}
}

// WithRenderer sets the renderer that receives groups and value states.
func WithRenderer(r Renderer) Option {
	return func(s *Selector) {
		if r != nil {
			s.renderer = r
		}
	}
}
