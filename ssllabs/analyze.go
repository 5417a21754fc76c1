package ssllabs

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
)

// AnalyzeOptions are the optional parameters of a new assessment.
type AnalyzeOptions struct {
	// Publish lists the results on the public SSL Labs boards.
	Publish bool
	// IgnoreMismatch proceeds when the certificate does not match the
	// hostname.
	IgnoreMismatch bool
}

// Assessment is one observation of a remote assessment. Values are
// immutable: Poll returns a new Assessment.
type Assessment struct {
	name     string
	opts     AnalyzeOptions
	snapshot *Host
}

// Snapshot is the Host as of the latest response. It is partial while the
// assessment is not Done.
func (a *Assessment) Snapshot() *Host {
	return a.snapshot
}

// Done reports whether the assessment reached READY or ERROR.
func (a *Assessment) Done() bool {
	return a.snapshot.Status.Terminal()
}

// Result returns the completed Host, or ErrNoHost while the assessment is
// still running. An ERROR status is a result too: check Host.Status.
func (a *Assessment) Result() (*Host, error) {
	if !a.Done() {
		return nil, ErrNoHost
	}
	return a.snapshot, nil
}

// query builds the /analyze parameters. all=done is always requested so
// endpoint details are included once an endpoint completes.
func (o AnalyzeOptions) query(host string, startNew bool) url.Values {
	q := url.Values{}
	q.Set("host", host)
	q.Set("all", "done")
	if startNew {
		q.Set("startNew", "on")
	}
	if o.Publish {
		q.Set("publish", "on")
	}
	if o.IgnoreMismatch {
		q.Set("ignoreMismatch", "on")
	}
	return q
}

// Start initiates a fresh assessment of host, bypassing cached results.
func (c *Client) Start(ctx context.Context, host string, opts AnalyzeOptions) (*Assessment, error) {
	snapshot, err := c.analyze(ctx, opts.query(host, true))
	if err != nil {
		return nil, err
	}
	c.logger.Info("assessment started",
		zap.String("host", host),
		zap.String("status", string(snapshot.Status)))
	return &Assessment{name: host, opts: opts, snapshot: snapshot}, nil
}

// Poll fetches the next observation of prev. A Done assessment is returned
// as is without a request. The caller owns the delay between polls.
func (c *Client) Poll(ctx context.Context, prev *Assessment) (*Assessment, error) {
	if prev.Done() {
		return prev, nil
	}
	snapshot, err := c.analyze(ctx, prev.opts.query(prev.name, false))
	if err != nil {
		return nil, err
	}
	if snapshot.Status != prev.snapshot.Status {
		c.logger.Info("assessment status changed",
			zap.String("host", prev.name),
			zap.String("from", string(prev.snapshot.Status)),
			zap.String("to", string(snapshot.Status)))
	}
	return &Assessment{name: prev.name, opts: prev.opts, snapshot: snapshot}, nil
}

func (c *Client) analyze(ctx context.Context, q url.Values) (*Host, error) {
	var h Host
	if err := c.get(ctx, "analyze", q, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Analyze starts an assessment of host and polls it to a terminal status.
// Every non-terminal snapshot is passed to progress, which may be nil, and
// the wait before the next poll is taken from b. Polling gives up when b
// returns backoff.Stop or ctx is done.
func (c *Client) Analyze(ctx context.Context, host string, opts AnalyzeOptions, b backoff.BackOff, progress func(*Host)) (*Host, error) {
	a, err := c.Start(ctx, host, opts)
	if err != nil {
		return nil, err
	}
	b.Reset()
	for !a.Done() {
		if progress != nil {
			progress(a.Snapshot())
		}
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return nil, fmt.Errorf("ssllabs: gave up polling %s in status %s", host, a.Snapshot().Status)
		}
		if err := sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("ssllabs: polling %s: %w", host, err)
		}
		if a, err = c.Poll(ctx, a); err != nil {
			return nil, err
		}
	}
	return a.Result()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
