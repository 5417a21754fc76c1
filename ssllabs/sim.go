package ssllabs

import "encoding/json"

// SimDetails holds the handshake simulation results.
type SimDetails struct {
	Results []Simulation `json:"results"`

	Raw json.RawMessage `json:"-"`
}

func (s *SimDetails) UnmarshalJSON(b []byte) error {
	type plain SimDetails
	raw, err := decodeEntity(b, (*plain)(s), "sims")
	s.Raw = raw
	return err
}

// Simulation is the outcome of one simulated client handshake.
type Simulation struct {
	Client *SimClient `json:"client"`
	// ErrorCode is 0 when the handshake succeeded.
	ErrorCode  int    `json:"errorCode"`
	Attempts   int    `json:"attempts"`
	ProtocolID int    `json:"protocolId"`
	SuiteID    int    `json:"suiteId"`
	KxInfo     string `json:"kxInfo"`

	Raw json.RawMessage `json:"-"`
}

func (s *Simulation) UnmarshalJSON(b []byte) error {
	type plain Simulation
	raw, err := decodeEntity(b, (*plain)(s), "simulation")
	s.Raw = raw
	return err
}

// Succeeded reports whether the simulated handshake completed.
func (s *Simulation) Succeeded() bool {
	return s.ErrorCode == 0
}

type SimClient struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Version  string `json:"version"`
	// IsReference marks the clients representative of modern browsers.
	IsReference bool `json:"isReference"`

	Raw json.RawMessage `json:"-"`
}

func (c *SimClient) UnmarshalJSON(b []byte) error {
	type plain SimClient
	raw, err := decodeEntity(b, (*plain)(c), "sim client")
	c.Raw = raw
	return err
}
