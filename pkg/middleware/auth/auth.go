// middleware/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Authorize runs locate, validate and derive in order. The first failing stage
// decides the outcome and nothing after it runs.
func (d *Delegate[T]) Authorize(ctx context.Context, header http.Header) Outcome[T] {
	out := d.authorize(ctx, header)
	d.recorder.RecordOutcome(out.label())
	return out
}

func (d *Delegate[T]) authorize(ctx context.Context, header http.Header) Outcome[T] {
	// 1) locate
	cred, err := locateCookie(header, d.cfg.CookieName)
	if err != nil {
		d.log.Debug("auth cookie not usable",
			zap.String("cookie", d.cfg.CookieName),
			zap.Error(err),
		)
		return rejected[T](statusFor(err), err)
	}

	// 2) validate remotely
	ok, err := d.authority.Validate(ctx, cred.Segment)
	if err != nil {
		d.log.Error("failed to authenticate with remote authority",
			zap.String("url", d.cfg.ValidateURL),
			zap.Error(err),
		)
		return rejected[T](http.StatusBadGateway, err)
	}
	if !ok {
		d.log.Debug("remote authority rejected cookie", zap.String("cookie", cred.Name))
		return rejected[T](http.StatusForbidden, ErrRejectedByAuthority)
	}

	// 3) derive identity
	subject, err := extractSubject(cred.Value)
	if err != nil {
		d.log.Debug("token without usable subject", zap.Error(err))
		return rejected[T](http.StatusBadRequest, err)
	}
	id, err := d.mapper(subject)
	if err != nil {
		d.log.Debug("subject rejected by identity mapper",
			zap.String("sub", subject),
			zap.Error(err),
		)
		if !errors.Is(err, ErrIdentityMapping) {
			err = fmt.Errorf("%w: %w", ErrIdentityMapping, err)
		}
		return rejected[T](http.StatusBadRequest, err)
	}

	d.log.Debug("authorized", zap.String("sub", subject))
	return authorized(id, subject)
}
