package adapter

// Option configures a transport built by [NewTransport].
type Option func(*options)

type options struct {
	token   string
	keyHash string
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithKeyHash sends keyHash in the [KeyHashHeader] of every push.
func WithKeyHash(keyHash string) Option {
	return func(o *options) {
		o.keyHash = keyHash
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
