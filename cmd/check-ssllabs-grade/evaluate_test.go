package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmollerup/sensu-check-ssllabs/ssllabs"
)

var evalNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func endpoint(ip, grade string, expiresIn time.Duration) ssllabs.Endpoint {
	ep := ssllabs.Endpoint{IPAddress: ip, Grade: ssllabs.Grade(grade)}
	if expiresIn != 0 {
		ep.Details = &ssllabs.EndpointDetails{
			Cert: &ssllabs.Cert{NotAfter: evalNow.Add(expiresIn)},
		}
	}
	return ep
}

func TestEvaluate(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name         string
		endpoints    []ssllabs.Endpoint
		criteria     criteria
		wantGrade    ssllabs.Grade
		wantPass     bool
		wantExpiry   time.Time
		gradeFailed  bool
		expiryFailed bool
	}{
		{
			name: "worst grade of the cluster fails a higher minimum",
			endpoints: []ssllabs.Endpoint{
				endpoint("192.0.2.1", "A", 0),
				endpoint("192.0.2.2", "B+", 0),
				endpoint("192.0.2.3", "", 0),
			},
			criteria:    criteria{MinGrade: "A"},
			wantGrade:   "B+",
			gradeFailed: true,
		},
		{
			name: "worst grade of the cluster passes a lower minimum",
			endpoints: []ssllabs.Endpoint{
				endpoint("192.0.2.1", "A", 0),
				endpoint("192.0.2.2", "B+", 0),
				endpoint("192.0.2.3", "", 0),
			},
			criteria:  criteria{MinGrade: "B"},
			wantGrade: "B+",
			wantPass:  true,
		},
		{
			name: "no graded endpoints is EMPTY",
			endpoints: []ssllabs.Endpoint{
				endpoint("192.0.2.1", "", 0),
			},
			criteria:    criteria{MinGrade: "F"},
			wantGrade:   ssllabs.GradeEmpty,
			gradeFailed: true,
		},
		{
			name:      "allow empty passes A+",
			endpoints: nil,
			criteria:  criteria{MinGrade: ssllabs.GradeAPlus, AllowEmpty: true},
			wantGrade: ssllabs.GradeAPlus,
			wantPass:  true,
		},
		{
			name: "certificate expiring within threshold",
			endpoints: []ssllabs.Endpoint{
				endpoint("192.0.2.1", "A", 10*day),
			},
			criteria:     criteria{MinGrade: "A", ExpireWithin: 30 * day},
			wantGrade:    "A",
			wantExpiry:   evalNow.Add(10 * day),
			expiryFailed: true,
		},
		{
			name: "earliest expiry of the cluster is used",
			endpoints: []ssllabs.Endpoint{
				endpoint("192.0.2.1", "A", 90*day),
				endpoint("192.0.2.2", "A", 40*day),
			},
			criteria:   criteria{MinGrade: "A", ExpireWithin: 30 * day},
			wantGrade:  "A",
			wantExpiry: evalNow.Add(40 * day),
			wantPass:   true,
		},
		{
			name: "expiry ignored without threshold",
			endpoints: []ssllabs.Endpoint{
				endpoint("192.0.2.1", "A", day),
			},
			criteria:   criteria{MinGrade: "A"},
			wantGrade:  "A",
			wantExpiry: evalNow.Add(day),
			wantPass:   true,
		},
		{
			name: "unknown expiry does not fail",
			endpoints: []ssllabs.Endpoint{
				endpoint("192.0.2.1", "A", 0),
			},
			criteria:  criteria{MinGrade: "A", ExpireWithin: 30 * day},
			wantGrade: "A",
			wantPass:  true,
		},
		{
			name: "both checks can fail",
			endpoints: []ssllabs.Endpoint{
				endpoint("192.0.2.1", "C", -day),
			},
			criteria:     criteria{MinGrade: "A", ExpireWithin: day},
			wantGrade:    "C",
			wantExpiry:   evalNow.Add(-day),
			gradeFailed:  true,
			expiryFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &ssllabs.Host{Host: "example.com", Status: ssllabs.StatusReady, Endpoints: tt.endpoints}

			v, err := evaluate(host, tt.criteria, evalNow)
			require.NoError(t, err)

			assert.Equal(t, tt.wantGrade, v.Grade)
			assert.Equal(t, tt.wantPass, v.Pass())
			assert.Equal(t, tt.gradeFailed, v.GradeFailed)
			assert.Equal(t, tt.expiryFailed, v.ExpiryFailed)
			assert.True(t, tt.wantExpiry.Equal(v.Expiry), "expiry %s, want %s", v.Expiry, tt.wantExpiry)
		})
	}
}

func TestEvaluateIgnoreTrust(t *testing.T) {
	ep := endpoint("192.0.2.1", "T", 0)
	ep.GradeTrustIgnored = "A"
	host := &ssllabs.Host{Endpoints: []ssllabs.Endpoint{ep}}

	v, err := evaluate(host, criteria{MinGrade: "A"}, evalNow)
	require.NoError(t, err)
	assert.Equal(t, ssllabs.GradeT, v.Grade)
	assert.False(t, v.Pass())

	v, err = evaluate(host, criteria{MinGrade: "A", IgnoreTrust: true}, evalNow)
	require.NoError(t, err)
	assert.Equal(t, ssllabs.Grade("A"), v.Grade)
	assert.True(t, v.Pass())
}

func TestEvaluateUnknownGrade(t *testing.T) {
	host := &ssllabs.Host{Endpoints: []ssllabs.Endpoint{endpoint("192.0.2.1", "Z", 0)}}

	_, err := evaluate(host, criteria{MinGrade: "A"}, evalNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "192.0.2.1")
}
