package ssllabs

import "encoding/json"

type Protocol struct {
	// ID is the version number, e.g. 0x0303 for TLS 1.2.
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	// V2SuitesDisabled is set when SSLv2 is enabled with all of its suites
	// disabled.
	V2SuitesDisabled bool `json:"v2SuitesDisabled"`
	Q                *int `json:"q"` // 0 if insecure

	Raw json.RawMessage `json:"-"`
}

func (p *Protocol) UnmarshalJSON(b []byte) error {
	type plain Protocol
	raw, err := decodeEntity(b, (*plain)(p), "protocol", "id")
	p.Raw = raw
	return err
}

type Suites struct {
	List []Suite `json:"list"`
	// Preference is true when the server selects the suite, nil when it
	// could not be determined.
	Preference *bool `json:"preference"`

	Raw json.RawMessage `json:"-"`
}

func (s *Suites) UnmarshalJSON(b []byte) error {
	type plain Suites
	raw, err := decodeEntity(b, (*plain)(s), "suites")
	s.Raw = raw
	return err
}

// Suite is one supported cipher suite.
type Suite struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	CipherStrength int    `json:"cipherStrength"`
	DhStrength     int    `json:"dhStrength"`
	DhP            int    `json:"dhP"`
	DhG            int    `json:"dhG"`
	DhYs           int    `json:"dhYs"`
	EcdhBits       int    `json:"ecdhBits"`
	// EcdhStrength is the RSA-equivalent strength.
	EcdhStrength int  `json:"ecdhStrength"`
	Q            *int `json:"q"` // 0 if insecure

	Raw json.RawMessage `json:"-"`
}

func (s *Suite) UnmarshalJSON(b []byte) error {
	type plain Suite
	raw, err := decodeEntity(b, (*plain)(s), "suite", "id")
	s.Raw = raw
	return err
}
