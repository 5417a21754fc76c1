package ssllabs

import (
	"encoding/json"
	"time"
)

// Info is the response of the /info endpoint.
type Info struct {
	EngineVersion        string `json:"engineVersion"`
	CriteriaVersion      string `json:"criteriaVersion"`
	ClientMaxAssessments int    `json:"clientMaxAssessments"`
	// MaxAssessments is the number of concurrent assessments the client may
	// initiate.
	MaxAssessments     int `json:"maxAssessments"`
	CurrentAssessments int `json:"currentAssessments"`
	// NewAssessmentCoolOff is the wait required between two new
	// assessments. Starting earlier is answered with a 429.
	NewAssessmentCoolOff time.Duration `json:"-"`
	// Messages are broadcast messages. Private ones carry a "[Private]"
	// prefix.
	Messages []string `json:"messages"`

	Raw json.RawMessage `json:"-"`
}

func (i *Info) UnmarshalJSON(b []byte) error {
	type plain Info
	var wire struct {
		plain
		NewAssessmentCoolOff int64 `json:"newAssessmentCoolOff"`
	}
	raw, err := decodeEntity(b, &wire, "info", "newAssessmentCoolOff")
	if err != nil {
		return err
	}
	*i = Info(wire.plain)
	i.NewAssessmentCoolOff = time.Duration(wire.NewAssessmentCoolOff) * time.Millisecond
	i.Raw = raw
	return nil
}

// StatusCodes is the response of the /getStatusCodes endpoint: the English
// translation of every endpoint status details code. Codes are stable,
// translations may change.
type StatusCodes struct {
	StatusDetails map[string]string `json:"statusDetails"`

	Raw json.RawMessage `json:"-"`
}

func (s *StatusCodes) UnmarshalJSON(b []byte) error {
	type plain StatusCodes
	raw, err := decodeEntity(b, (*plain)(s), "status codes")
	s.Raw = raw
	return err
}

// Host is one assessment of a hostname. A snapshot taken while the status is
// DNS or IN_PROGRESS is partial. Once the status is terminal it is final.
type Host struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	// IsPublic is true when the assessment is listed on the public boards.
	IsPublic bool   `json:"isPublic"`
	Status   Status `json:"status"`
	// StatusMessage holds the error message when Status is ERROR.
	StatusMessage   string     `json:"statusMessage"`
	StartTime       time.Time  `json:"-"`
	TestTime        *time.Time `json:"-"` // nil until the assessment completes
	EngineVersion   string     `json:"engineVersion"`
	CriteriaVersion string     `json:"criteriaVersion"`
	// CacheExpiryTime is typically set only for assessments with errors.
	CacheExpiryTime *time.Time `json:"-"`
	Endpoints       []Endpoint `json:"endpoints"`
	// CertHostnames is set only when the server certificate does not match
	// the requested hostname.
	CertHostnames []string `json:"certHostnames"`

	Raw json.RawMessage `json:"-"`
}

func (h *Host) UnmarshalJSON(b []byte) error {
	type plain Host
	var wire struct {
		plain
		StartTime       int64  `json:"startTime"`
		TestTime        *int64 `json:"testTime"`
		CacheExpiryTime *int64 `json:"cacheExpiryTime"`
	}
	raw, err := decodeEntity(b, &wire, "host", "host", "status", "startTime")
	if err != nil {
		return err
	}
	*h = Host(wire.plain)
	h.StartTime = fromMillis(wire.StartTime)
	h.TestTime = optionalMillis(wire.TestTime)
	h.CacheExpiryTime = optionalMillis(wire.CacheExpiryTime)
	h.Raw = raw
	return nil
}

// Endpoint is one IP address of the assessed host.
type Endpoint struct {
	IPAddress string `json:"ipAddress"`
	// ServerName is retrieved via reverse DNS.
	ServerName string `json:"serverName"`
	// StatusMessage is "Ready" once the endpoint assessment succeeded.
	StatusMessage        string `json:"statusMessage"`
	StatusDetails        string `json:"statusDetails"`
	StatusDetailsMessage string `json:"statusDetailsMessage"`
	// Grade is empty until the endpoint has been graded.
	Grade             Grade `json:"grade"`
	GradeTrustIgnored Grade `json:"gradeTrustIgnored"`
	HasWarnings       bool  `json:"hasWarnings"`
	IsExceptional     bool  `json:"isExceptional"`
	// Progress runs from 0 to 100, and is -1 before the endpoint starts.
	Progress   int           `json:"progress"`
	Duration   time.Duration `json:"-"`
	ETA        time.Duration `json:"-"`
	Delegation Delegation    `json:"delegation"`
	// Details is nil until the assessment has progressed far enough.
	Details *EndpointDetails `json:"details"`

	Raw json.RawMessage `json:"-"`
}

func (e *Endpoint) UnmarshalJSON(b []byte) error {
	type plain Endpoint
	var wire struct {
		plain
		Progress *int  `json:"progress"`
		Duration int64 `json:"duration"` // milliseconds
		ETA      int64 `json:"eta"`      // seconds
	}
	raw, err := decodeEntity(b, &wire, "endpoint", "ipAddress")
	if err != nil {
		return err
	}
	*e = Endpoint(wire.plain)
	e.Progress = -1
	if wire.Progress != nil {
		e.Progress = *wire.Progress
	}
	e.Duration = time.Duration(wire.Duration) * time.Millisecond
	e.ETA = time.Duration(wire.ETA) * time.Second
	e.Raw = raw
	return nil
}

// EffectiveGrade is the grade used for evaluation: GradeTrustIgnored when
// ignoreTrust is set and the endpoint reported one, Grade otherwise.
func (e *Endpoint) EffectiveGrade(ignoreTrust bool) Grade {
	if ignoreTrust && e.GradeTrustIgnored != "" {
		return e.GradeTrustIgnored
	}
	return e.Grade
}
