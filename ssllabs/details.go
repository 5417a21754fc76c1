package ssllabs

import (
	"encoding/json"
	"time"
)

// EndpointDetails is the full result for one endpoint.
type EndpointDetails struct {
	// HostStartTime should match Host.StartTime when results are assembled
	// from several responses.
	HostStartTime *time.Time `json:"-"`
	Key           *Key       `json:"key"`
	Cert          *Cert      `json:"cert"`
	Chain         *Chain     `json:"chain"`
	Protocols     []Protocol `json:"protocols"`
	Suites        *Suites    `json:"suites"`
	// ServerSignature is the HTTP Server response header, when known.
	ServerSignature     string        `json:"serverSignature"`
	PrefixDelegation    bool          `json:"prefixDelegation"`
	NonPrefixDelegation bool          `json:"nonPrefixDelegation"`
	VulnBeast           bool          `json:"vulnBeast"`
	RenegSupport        *RenegSupport `json:"renegSupport"`
	// SessionResumption: 0 disabled with empty session IDs, 1 IDs returned
	// but sessions not resumed, 2 enabled.
	SessionResumption  int                 `json:"sessionResumption"`
	CompressionMethods *CompressionMethods `json:"compressionMethods"`
	SupportsNpn        bool                `json:"supportsNpn"`
	NpnProtocols       SpaceList           `json:"npnProtocols"`
	SessionTickets     *SessionTickets     `json:"sessionTickets"`
	OcspStapling       bool                `json:"ocspStapling"`
	// StaplingRevocationStatus uses the Cert.RevocationStatus codes.
	StaplingRevocationStatus       int    `json:"staplingRevocationStatus"`
	StaplingRevocationErrorMessage string `json:"staplingRevocationErrorMessage"`
	SniRequired                    bool   `json:"sniRequired"`
	// HTTPStatusCode is zero when the HTTP request failed.
	HTTPStatusCode      int                  `json:"httpStatusCode"`
	HTTPForwarding      string               `json:"httpForwarding"`
	SupportsRc4         bool                 `json:"supportsRc4"`
	Rc4WithModern       bool                 `json:"rc4WithModern"`
	Rc4Only             bool                 `json:"rc4Only"`
	ForwardSecrecy      *ForwardSecrecy      `json:"forwardSecrecy"`
	ProtocolIntolerance *ProtocolIntolerance `json:"protocolIntolerance"`
	MiscIntolerance     *MiscIntolerance     `json:"miscIntolerance"`
	Sims                *SimDetails          `json:"sims"`
	Heartbleed          bool                 `json:"heartbleed"`
	Heartbeat           bool                 `json:"heartbeat"`
	// OpenSslCcs is the CVE-2014-0224 result: -1 test failed, 0 unknown,
	// 1 not vulnerable, 2 possibly vulnerable but not exploitable,
	// 3 vulnerable and exploitable.
	OpenSslCcs int `json:"openSslCcs"`
	// OpenSSLLuckyMinus20 is the CVE-2016-2107 result: -1 test failed,
	// 0 unknown, 1 not vulnerable, 2 vulnerable and insecure.
	OpenSSLLuckyMinus20 int  `json:"openSSLLuckyMinus20"`
	Poodle              bool `json:"poodle"`
	// PoodleTLS: -3 timeout, -2 TLS not supported, -1 test failed,
	// 0 unknown, 1 not vulnerable, 2 vulnerable.
	PoodleTLS int `json:"poodleTls"`
	// FallbackScsv is nil when the server supports a single protocol
	// version and support could not be tested.
	FallbackScsv *bool      `json:"fallbackScsv"`
	Freak        bool       `json:"freak"`
	HasSct       *HasSct    `json:"hasSct"`
	DhPrimes     []HexBytes `json:"dhPrimes"`
	// DhUsesKnownPrimes: 0 no, 1 yes but not weak, 2 yes and weak. Nil
	// without DH key exchange, as is DhYsReuse.
	DhUsesKnownPrimes  *int          `json:"dhUsesKnownPrimes"`
	DhYsReuse          *bool         `json:"dhYsReuse"`
	Logjam             bool          `json:"logjam"`
	ChaCha20Preference bool          `json:"chaCha20Preference"`
	HstsPolicy         *HstsPolicy   `json:"hstsPolicy"`
	HstsPreloads       []HstsPreload `json:"hstsPreloads"`
	HpkpPolicy         *HpkpPolicy   `json:"hpkpPolicy"`
	HpkpRoPolicy       *HpkpPolicy   `json:"hpkpRoPolicy"`
	DrownHosts         []DrownHost   `json:"drownHosts"`
	DrownErrors        bool          `json:"drownErrors"`
	DrownVulnerable    bool          `json:"drownVulnerable"`

	Raw json.RawMessage `json:"-"`
}

func (d *EndpointDetails) UnmarshalJSON(b []byte) error {
	type plain EndpointDetails
	var wire struct {
		plain
		HostStartTime *int64 `json:"hostStartTime"`
	}
	raw, err := decodeEntity(b, &wire, "endpoint details")
	if err != nil {
		return err
	}
	*d = EndpointDetails(wire.plain)
	d.HostStartTime = optionalMillis(wire.HostStartTime)
	d.Raw = raw
	return nil
}

// Key is the server key.
type Key struct {
	// Size in bits, e.g. 2048 for RSA or 256 for EC.
	Size int `json:"size"`
	// Strength is the size expressed in RSA bits.
	Strength int    `json:"strength"`
	Alg      string `json:"alg"`
	// DebianFlaw is set when the key is suspected to come from a weak
	// random number generator.
	DebianFlaw bool `json:"debianFlaw"`
	Q          *int `json:"q"` // 0 if insecure

	Raw json.RawMessage `json:"-"`
}

func (k *Key) UnmarshalJSON(b []byte) error {
	type plain Key
	raw, err := decodeEntity(b, (*plain)(k), "key")
	k.Raw = raw
	return err
}
