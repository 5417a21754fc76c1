package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sensu/sensu-plugin-sdk/sensu"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nmollerup/sensu-check-ssllabs/ssllabs"
)

// TestCheckArgs tests the argument validation logic
func TestCheckArgs(t *testing.T) {
	// Initialize validator as main() does
	validate = validator.New()

	valid := func() Config {
		return Config{
			Host:       "example.com",
			MinGrade:   "A+",
			Entrypoint: ssllabs.DefaultEntrypoint,
			Interval:   10,
		}
	}

	tests := []struct {
		name         string
		modify       func(c *Config)
		wantStatus   int
		wantErr      bool
		errContains  string
		wantMinGrade ssllabs.Grade
	}{
		{
			name:        "missing hostname",
			modify:      func(c *Config) { c.Host = "" },
			wantStatus:  sensu.CheckStateWarning,
			wantErr:     true,
			errContains: "--hostname is required",
		},
		{
			name:        "invalid FQDN",
			modify:      func(c *Config) { c.Host = "not a valid fqdn!" },
			wantStatus:  sensu.CheckStateWarning,
			wantErr:     true,
			errContains: "hostname is not a valid FQDN",
		},
		{
			name:        "invalid entrypoint",
			modify:      func(c *Config) { c.Entrypoint = "api.ssllabs.com" },
			wantStatus:  sensu.CheckStateWarning,
			wantErr:     true,
			errContains: "--entrypoint is not a valid URL",
		},
		{
			name:        "negative expire days",
			modify:      func(c *Config) { c.ExpireDays = -1 },
			wantStatus:  sensu.CheckStateWarning,
			wantErr:     true,
			errContains: "--expire-days cannot be negative",
		},
		{
			name:        "zero interval",
			modify:      func(c *Config) { c.Interval = 0 },
			wantStatus:  sensu.CheckStateWarning,
			wantErr:     true,
			errContains: "--interval must be at least 1 second",
		},
		{
			name:        "unknown grade",
			modify:      func(c *Config) { c.MinGrade = "G" },
			wantStatus:  sensu.CheckStateWarning,
			wantErr:     true,
			errContains: "--grade must be one of A+, A, A-",
		},
		{
			name:         "valid configuration",
			modify:       func(c *Config) {},
			wantStatus:   sensu.CheckStateOK,
			wantMinGrade: ssllabs.GradeAPlus,
		},
		{
			name: "valid configuration with all options",
			modify: func(c *Config) {
				c.MinGrade = "B-"
				c.ExpireDays = 30
				c.IgnoreTrust = true
				c.AllowEmpty = true
				c.Quiet = true
				c.Publish = true
				c.IgnoreMismatch = true
				c.Interval = 1
			},
			wantStatus:   sensu.CheckStateOK,
			wantMinGrade: "B-",
		},
		{
			name:         "debug logging",
			modify:       func(c *Config) { c.Debug = true },
			wantStatus:   sensu.CheckStateOK,
			wantMinGrade: ssllabs.GradeAPlus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minGrade = ""

			// Set the global plugin variable
			plugin = valid()
			tt.modify(&plugin)

			status, err := checkArgs(nil)

			if (err != nil) != tt.wantErr {
				t.Errorf("checkArgs() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if status != tt.wantStatus {
				t.Errorf("checkArgs() status = %v, want %v", status, tt.wantStatus)
			}

			if tt.wantErr && err != nil && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("checkArgs() error = %v, should contain %v", err, tt.errContains)
			}

			if !tt.wantErr && minGrade != tt.wantMinGrade {
				t.Errorf("minGrade = %v, want %v", minGrade, tt.wantMinGrade)
			}
		})
	}
}

var checkNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// fakeSSLLabs answers /info and /analyze, handing out the analyze bodies in
// order and repeating the last one.
type fakeSSLLabs struct {
	mu      sync.Mutex
	analyze []string
	status  int
	paths   []string
}

func (f *fakeSSLLabs) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paths = append(f.paths, r.URL.Path)
	if f.status != 0 {
		w.WriteHeader(f.status)
		fmt.Fprint(w, "Too many requests")
		return
	}
	switch r.URL.Path {
	case "/info":
		fmt.Fprint(w, `{"engineVersion":"1.22.38","criteriaVersion":"2009l","maxAssessments":25,"currentAssessments":0,"newAssessmentCoolOff":1000,"messages":["This assessment service is provided free of charge."]}`)
	case "/analyze":
		body := f.analyze[0]
		if len(f.analyze) > 1 {
			f.analyze = f.analyze[1:]
		}
		fmt.Fprint(w, body)
	default:
		http.NotFound(w, r)
	}
}

func readyHost(grade string, expiresIn time.Duration) string {
	details := ""
	if expiresIn != 0 {
		notAfter := checkNow.Add(expiresIn).UnixMilli()
		details = fmt.Sprintf(`,"details":{"cert":{"subject":"CN=example.com","notBefore":%d,"notAfter":%d}}`,
			checkNow.Add(-365*24*time.Hour).UnixMilli(), notAfter)
	}
	return fmt.Sprintf(`{"host":"example.com","port":443,"status":"READY","startTime":%d,"endpoints":[{"ipAddress":"192.0.2.1","grade":%q,"progress":100%s}]}`,
		checkNow.UnixMilli(), grade, details)
}

const (
	inProgressHost = `{"host":"example.com","status":"IN_PROGRESS","startTime":1709294400000,"endpoints":[{"ipAddress":"192.0.2.1","progress":50,"statusDetailsMessage":"Testing cipher suites"}]}`
	errorHost      = `{"host":"example.com","status":"ERROR","statusMessage":"Unable to resolve domain name","startTime":1709294400000}`
)

// TestExecuteCheck tests the grade and expiry checking against a fake API
func TestExecuteCheck(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name         string
		config       Config
		api          *fakeSSLLabs
		wantStatus   int
		wantErr      bool
		wantOutput   []string
		wantNoOutput bool
		wantNoInfo   bool
	}{
		{
			name:       "grade meets minimum",
			config:     Config{MinGrade: "A"},
			api:        &fakeSSLLabs{analyze: []string{readyHost("A", 0)}},
			wantStatus: sensu.CheckStateOK,
			wantOutput: []string{
				"This assessment service is provided free of charge.\n\n",
				"Needed grade of A, got grade of A\n",
			},
		},
		{
			name:       "grade below minimum",
			config:     Config{MinGrade: "A"},
			api:        &fakeSSLLabs{analyze: []string{readyHost("B", 0)}},
			wantStatus: sensu.CheckStateWarning,
			wantOutput: []string{"Needed grade of A, got grade of B\n"},
		},
		{
			name:       "polls until ready",
			config:     Config{MinGrade: "A"},
			api:        &fakeSSLLabs{analyze: []string{inProgressHost, readyHost("A+", 0)}},
			wantStatus: sensu.CheckStateOK,
			wantOutput: []string{
				"  192.0.2.1 (-): 50% Testing cipher suites\n",
				"scanning: 50%\n",
				"Needed grade of A, got grade of A+\n",
			},
		},
		{
			name:       "assessment error",
			config:     Config{MinGrade: "F"},
			api:        &fakeSSLLabs{analyze: []string{errorHost}},
			wantStatus: sensu.CheckStateWarning,
			wantOutput: []string{
				"assessment of example.com failed: Unable to resolve domain name\n",
				"Needed grade of F, got grade of EMPTY\n",
			},
		},
		{
			name:       "assessment error allowed empty",
			config:     Config{MinGrade: "A+", AllowEmpty: true},
			api:        &fakeSSLLabs{analyze: []string{errorHost}},
			wantStatus: sensu.CheckStateOK,
			wantOutput: []string{"Needed grade of A+, got grade of A+\n"},
		},
		{
			name:       "certificate expiring soon",
			config:     Config{MinGrade: "A", ExpireDays: 30},
			api:        &fakeSSLLabs{analyze: []string{readyHost("A", 10*day)}},
			wantStatus: sensu.CheckStateWarning,
			wantOutput: []string{
				"Needed grade of A, got grade of A\n",
				"Needed expire time at least 30 days away, 10 days left, expiring on Mon, 11 Mar 2024 12:00:00 UTC\n",
			},
		},
		{
			name:       "certificate valid for long time",
			config:     Config{MinGrade: "A", ExpireDays: 30},
			api:        &fakeSSLLabs{analyze: []string{readyHost("A", 365*day)}},
			wantStatus: sensu.CheckStateOK,
			wantOutput: []string{"365 days left"},
		},
		{
			name:       "certificate expired hours ago",
			config:     Config{MinGrade: "A", ExpireDays: 30},
			api:        &fakeSSLLabs{analyze: []string{readyHost("A", -12*time.Hour)}},
			wantStatus: sensu.CheckStateWarning,
			wantOutput: []string{"Needed expire time at least 30 days away, -1 days left, expiring on Fri, 01 Mar 2024 00:00:00 UTC\n"},
		},
		{
			name:       "no certificate expiry reported",
			config:     Config{MinGrade: "A", ExpireDays: 30},
			api:        &fakeSSLLabs{analyze: []string{readyHost("A", 0)}},
			wantStatus: sensu.CheckStateOK,
			wantOutput: []string{"Needed expire time at least 30 days away, no certificate expiry reported\n"},
		},
		{
			name:         "quiet prints nothing and skips info",
			config:       Config{MinGrade: "A", Quiet: true},
			api:          &fakeSSLLabs{analyze: []string{readyHost("B", 0)}},
			wantStatus:   sensu.CheckStateWarning,
			wantNoOutput: true,
			wantNoInfo:   true,
		},
		{
			name:       "request rate too high",
			config:     Config{MinGrade: "A"},
			api:        &fakeSSLLabs{status: http.StatusTooManyRequests},
			wantStatus: sensu.CheckStateCritical,
			wantErr:    true,
		},
		{
			name:       "request rate too high when quiet",
			config:     Config{MinGrade: "A", Quiet: true},
			api:        &fakeSSLLabs{status: http.StatusTooManyRequests},
			wantStatus: sensu.CheckStateCritical,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.api)
			defer srv.Close()

			var out bytes.Buffer
			stdout = &out
			now = func() time.Time { return checkNow }
			logger = zap.NewNop()

			// Set the global plugin variable
			plugin = tt.config
			plugin.Host = "example.com"
			plugin.Entrypoint = srv.URL
			plugin.Interval = 1
			minGrade = ssllabs.Grade(tt.config.MinGrade)

			status, err := executeCheck(nil)

			if (err != nil) != tt.wantErr {
				t.Errorf("executeCheck() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if status != tt.wantStatus {
				t.Errorf("executeCheck() status = %v, want %v", status, tt.wantStatus)
			}

			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
			if tt.wantNoOutput {
				assert.Empty(t, out.String())
			}
			if tt.wantNoInfo {
				assert.NotContains(t, tt.api.paths, "/info")
			}
		})
	}
}

func TestGradeList(t *testing.T) {
	list := gradeList()
	assert.True(t, strings.HasPrefix(list, "A+, A, A-, B+"))
	assert.True(t, strings.HasSuffix(list, "T, M, EMPTY"))
}
