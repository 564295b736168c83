package auth

import (
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Config is fixed at construction and shared read-only by every request.
type Config struct {
	CookieName  string
	ValidateURL string
	// TimeoutMS bounds each call to the authority; 0 leaves it to the HTTP client.
	TimeoutMS int
	// RetryOnce allows a single retry after a transport failure.
	RetryOnce bool
}

func (c Config) validate() error {
	if c.CookieName == "" {
		return fmt.Errorf("%w: cookie name is empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.ValidateURL)
	if err != nil {
		return fmt.Errorf("%w: validate url: %w", ErrInvalidConfig, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: validate url %q is not absolute", ErrInvalidConfig, c.ValidateURL)
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}

// Delegate authorizes requests by asking a remote authority about the token
// cookie and deriving an identity of type T from the token's subject.
type Delegate[T any] struct {
	cfg       Config
	mapper    IdentityMapper[T]
	authority *RemoteAuthority
	log       *zap.Logger
	recorder  OutcomeRecorder
}

type options struct {
	client   HTTPDoer
	log      *zap.Logger
	recorder OutcomeRecorder
}

type Option func(*options)

// WithHTTPClient replaces the default client used for the authority call.
// Transport security and connection limits are configured there.
func WithHTTPClient(c HTTPDoer) Option { return func(o *options) { o.client = c } }
func WithLogger(l *zap.Logger) Option  { return func(o *options) { o.log = l } }
func WithRecorder(r OutcomeRecorder) Option {
	return func(o *options) { o.recorder = r }
}

func New[T any](cfg Config, mapper IdentityMapper[T], opts ...Option) (*Delegate[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if mapper == nil {
		return nil, fmt.Errorf("%w: nil identity mapper", ErrInvalidConfig)
	}

	o := options{log: zap.NewNop(), recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.recorder == nil {
		o.recorder = nopRecorder{}
	}

	authority := NewRemoteAuthority(o.client, cfg.ValidateURL, time.Duration(cfg.TimeoutMS)*time.Millisecond, cfg.RetryOnce)
	authority.recorder = o.recorder

	return &Delegate[T]{
		cfg:       cfg,
		mapper:    mapper,
		authority: authority,
		log:       o.log,
		recorder:  o.recorder,
	}, nil
}
