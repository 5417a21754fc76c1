package main

import (
	"fmt"
	"time"

	"github.com/nmollerup/sensu-check-ssllabs/ssllabs"
)

// criteria are the pass/fail thresholds of the check.
type criteria struct {
	MinGrade    ssllabs.Grade
	IgnoreTrust bool
	AllowEmpty  bool
	// ExpireWithin fails the check when a certificate expires within this
	// duration. Zero disables the expiry check.
	ExpireWithin time.Duration
}

type verdict struct {
	// Grade is the worst grade of the cluster.
	Grade ssllabs.Grade
	// Expiry is the earliest certificate expiry, zero when no graded
	// endpoint reported a certificate.
	Expiry       time.Time
	TimeLeft     time.Duration
	GradeFailed  bool
	ExpiryFailed bool
}

func (v verdict) Pass() bool {
	return !v.GradeFailed && !v.ExpiryFailed
}

// evaluate reduces a completed host to a verdict. Only endpoints with a
// grade take part. A cluster without graded endpoints gets EMPTY, the worst
// grade, unless empty clusters are allowed.
func evaluate(host *ssllabs.Host, c criteria, now time.Time) (verdict, error) {
	var v verdict
	graded := false

	for i := range host.Endpoints {
		ep := &host.Endpoints[i]
		if ep.Grade == "" {
			continue
		}
		g, err := ssllabs.ParseGrade(ep.EffectiveGrade(c.IgnoreTrust).String())
		if err != nil {
			return verdict{}, fmt.Errorf("endpoint %s: %w", ep.IPAddress, err)
		}
		if !graded || g.Worse(v.Grade) {
			v.Grade = g
		}
		graded = true

		if ep.Details != nil && ep.Details.Cert != nil {
			notAfter := ep.Details.Cert.NotAfter
			if v.Expiry.IsZero() || notAfter.Before(v.Expiry) {
				v.Expiry = notAfter
			}
		}
	}

	if !graded {
		v.Grade = ssllabs.GradeEmpty
		if c.AllowEmpty {
			v.Grade = ssllabs.GradeAPlus
		}
	}

	v.GradeFailed = v.Grade.Worse(c.MinGrade)
	if !v.Expiry.IsZero() {
		v.TimeLeft = v.Expiry.Sub(now)
		v.ExpiryFailed = c.ExpireWithin > 0 && v.TimeLeft <= c.ExpireWithin
	}
	return v, nil
}
