// Package readiness waits for a freshly started stack to serve traffic.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"
)

// ErrTimeout is returned by Wait when the URL never became ready within the
// configured window.
var ErrTimeout = errors.New("timed out waiting for stack to become ready")

// Statuses that count as ready. Redirects are included because the web
// frontend answers with one until first-run setup completes.
var readyStatuses = map[int]bool{
	http.StatusOK:                true,
	http.StatusMovedPermanently:  true,
	http.StatusFound:             true,
	http.StatusSeeOther:          true,
	http.StatusTemporaryRedirect: true,
	http.StatusPermanentRedirect: true,
}

const (
	defaultInterval = time.Second
	requestTimeout  = 2 * time.Second
)

// Poller polls a single URL until it answers with a ready status.
type Poller struct {
	URL      string
	Interval time.Duration
	Timeout  time.Duration
	Client   *http.Client
	Clock    clock.Clock
}

// NewPoller returns a poller with the fixed one-second cadence and a
// short-timeout client that surfaces redirects instead of following them.
func NewPoller(url string, timeout time.Duration) *Poller {
	return &Poller{
		URL:      url,
		Interval: defaultInterval,
		Timeout:  timeout,
		Client:   newClient(),
		Clock:    clock.WallClock,
	}
}

func newClient() *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Wait blocks until the URL answers with a ready status, the timeout
// elapses, or ctx is done. Transport errors are swallowed and retried.
func (p *Poller) Wait(ctx context.Context) error {
	err := retry.Call(retry.CallArgs{
		Func:        p.check,
		Attempts:    retry.UnlimitedAttempts,
		Delay:       p.Interval,
		MaxDuration: p.Timeout,
		Clock:       p.Clock,
		Stop:        ctx.Done(),
	})
	switch {
	case err == nil:
		return nil
	case retry.IsRetryStopped(err):
		return ctx.Err()
	case retry.IsDurationExceeded(err):
		return ErrTimeout
	}
	return err
}

func (p *Poller) check() error {
	resp, err := p.Client.Get(p.URL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if readyStatuses[resp.StatusCode] {
		return nil
	}
	return fmt.Errorf("%s answered %d", p.URL, resp.StatusCode)
}

// ServiceStatus represents the probed health of one endpoint.
type ServiceStatus int

const (
	StatusUnknown ServiceStatus = iota
	StatusUp
	StatusDown
	StatusStarting
)

// Probe issues a single request against url and classifies the answer.
// A ready status is up, any other HTTP answer means the service is there
// but still warming, and a transport error means down.
func Probe(url string) ServiceStatus {
	resp, err := newClient().Get(url)
	if err != nil {
		return StatusDown
	}
	defer resp.Body.Close()

	if readyStatuses[resp.StatusCode] {
		return StatusUp
	}
	return StatusStarting
}
