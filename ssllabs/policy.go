package ssllabs

import (
	"encoding/json"
	"time"
)

// Policy status values shared by HstsPolicy and HpkpPolicy.
const (
	PolicyUnknown  = "unknown"
	PolicyAbsent   = "absent"
	PolicyPresent  = "present"
	PolicyInvalid  = "invalid"
	PolicyDisabled = "disabled"
)

// HstsPolicy is the server's Strict-Transport-Security policy.
type HstsPolicy struct {
	// LongMaxAge is the max-age SSL Labs considers sufficiently large.
	LongMaxAge int64  `json:"LONG_MAX_AGE"`
	Header     string `json:"header"`
	Status     string `json:"status"`
	Error      string `json:"error"`
	// MaxAge, IncludeSubDomains and Preload are nil when the policy is
	// missing or invalid.
	MaxAge            *int64            `json:"maxAge"`
	IncludeSubDomains *bool             `json:"includeSubDomains"`
	Preload           *bool             `json:"preload"`
	Directives        map[string]string `json:"directives"`

	Raw json.RawMessage `json:"-"`
}

func (p *HstsPolicy) UnmarshalJSON(b []byte) error {
	type plain HstsPolicy
	raw, err := decodeEntity(b, (*plain)(p), "hsts policy")
	p.Raw = raw
	return err
}

// HstsPreload is the preload status of the hostname in one source. The
// check is for the hostname: "www.example.com" is present when
// "example.com" is listed with includeSubDomains.
type HstsPreload struct {
	Source string `json:"source"`
	// Status is one of error, unknown, absent or present.
	Status string `json:"status"`
	Error  string `json:"error"`
	// SourceTime is when the preload list was retrieved, nil when unknown.
	SourceTime *time.Time `json:"-"`

	Raw json.RawMessage `json:"-"`
}

func (p *HstsPreload) UnmarshalJSON(b []byte) error {
	type plain HstsPreload
	var wire struct {
		plain
		SourceTime *int64 `json:"sourceTime"`
	}
	raw, err := decodeEntity(b, &wire, "hsts preload")
	if err != nil {
		return err
	}
	*p = HstsPreload(wire.plain)
	p.SourceTime = optionalMillis(wire.SourceTime)
	p.Raw = raw
	return nil
}

// HpkpPolicy is a Public-Key-Pins policy, enforced or report-only.
type HpkpPolicy struct {
	Status            string `json:"status"`
	Header            string `json:"header"`
	Error             string `json:"error"`
	MaxAge            *int64 `json:"maxAge"`
	IncludeSubDomains *bool  `json:"includeSubDomains"`
	ReportURI         string `json:"reportUri"`
	Pins              []Pin  `json:"pins"`
	// MatchedPins are the pins matching the current configuration.
	MatchedPins []Pin             `json:"matchedPins"`
	Directives  []PolicyDirective `json:"directives"`

	Raw json.RawMessage `json:"-"`
}

func (p *HpkpPolicy) UnmarshalJSON(b []byte) error {
	type plain HpkpPolicy
	raw, err := decodeEntity(b, (*plain)(p), "hpkp policy")
	p.Raw = raw
	return err
}

type Pin struct {
	HashFunction string `json:"hashFunction"`
	Value        string `json:"value"`
}

type PolicyDirective struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DROWN host status values.
const (
	DrownError              = "error"
	DrownUnknown            = "unknown"
	DrownNotChecked         = "not_checked"
	DrownNotCheckedSameHost = "not_checked_same_host"
	DrownHandshakeFailure   = "handshake_failure"
	DrownSSLv2              = "sslv2"
	DrownKeyMatch           = "key_match"
	DrownHostnameMatch      = "hostname_match"
)

// DrownHost is a server sharing the endpoint's RSA key or hostname.
type DrownHost struct {
	IP      string `json:"ip"`
	Port    int    `json:"port"`
	Export  bool   `json:"export"`
	Special bool   `json:"special"` // vulnerable OpenSSL version
	SSLv2   bool   `json:"sslv2"`
	Status  string `json:"status"`

	Raw json.RawMessage `json:"-"`
}

func (h *DrownHost) UnmarshalJSON(b []byte) error {
	type plain DrownHost
	raw, err := decodeEntity(b, (*plain)(h), "drown host")
	h.Raw = raw
	return err
}

// Vulnerable reports whether the host makes the endpoint vulnerable.
func (h *DrownHost) Vulnerable() bool {
	return h.Status == DrownKeyMatch || h.Status == DrownHostnameMatch
}
