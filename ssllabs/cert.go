package ssllabs

import (
	"encoding/json"
	"time"
)

// Revocation status codes used by Cert and ChainCert.
const (
	RevocationNotChecked  = 0
	RevocationRevoked     = 1
	RevocationNotRevoked  = 2
	RevocationCheckError  = 3
	RevocationNoInfo      = 4
	RevocationInternalErr = 5
)

// Cert is the leaf certificate of an endpoint.
type Cert struct {
	Subject        string          `json:"subject"`
	CommonNames    []string        `json:"commonNames"`
	AltNames       []string        `json:"altNames"`
	NotBefore      time.Time       `json:"-"`
	NotAfter       time.Time       `json:"-"`
	IssuerSubject  string          `json:"issuerSubject"`
	SigAlg         string          `json:"sigAlg"`
	IssuerLabel    string          `json:"issuerLabel"`
	RevocationInfo *RevocationInfo `json:"revocationInfo"`
	CrlURIs        []string        `json:"crlURIs"`
	OcspURIs       []string        `json:"ocspURIs"`
	// RevocationStatus is one of the Revocation* codes. The CRL and OCSP
	// variants only consider that source.
	RevocationStatus     int  `json:"revocationStatus"`
	CrlRevocationStatus  int  `json:"crlRevocationStatus"`
	OcspRevocationStatus int  `json:"ocspRevocationStatus"`
	Sgc                  *SGC `json:"sgc"`
	// ValidationType is "E" for Extended Validation, empty when unknown.
	ValidationType string      `json:"validationType"`
	Issues         *CertIssues `json:"issues"`
	// Sct is true when the certificate embeds an SCT.
	Sct bool `json:"sct"`
	// MustStaple: 0 not supported, 1 supported but the OCSP response is not
	// stapled, 2 supported and stapled.
	MustStaple int `json:"mustStaple"`

	Raw json.RawMessage `json:"-"`
}

func (c *Cert) UnmarshalJSON(b []byte) error {
	type plain Cert
	var wire struct {
		plain
		NotBefore int64 `json:"notBefore"`
		NotAfter  int64 `json:"notAfter"`
	}
	raw, err := decodeEntity(b, &wire, "cert", "notBefore", "notAfter")
	if err != nil {
		return err
	}
	*c = Cert(wire.plain)
	c.NotBefore = fromMillis(wire.NotBefore)
	c.NotAfter = fromMillis(wire.NotAfter)
	c.Raw = raw
	return nil
}

// Chain is the certificate chain as sent by the server.
type Chain struct {
	// Certs are in the order the server sent them.
	Certs  []ChainCert  `json:"certs"`
	Issues *ChainIssues `json:"issues"`

	Raw json.RawMessage `json:"-"`
}

func (c *Chain) UnmarshalJSON(b []byte) error {
	type plain Chain
	raw, err := decodeEntity(b, (*plain)(c), "chain")
	c.Raw = raw
	return err
}

type ChainCert struct {
	Subject string `json:"subject"`
	// Label is a user-friendly name.
	Label                string           `json:"label"`
	NotBefore            *time.Time       `json:"-"`
	NotAfter             *time.Time       `json:"-"`
	IssuerSubject        string           `json:"issuerSubject"`
	IssuerLabel          string           `json:"issuerLabel"`
	SigAlg               string           `json:"sigAlg"`
	Issues               *ChainCertIssues `json:"issues"`
	KeyAlg               string           `json:"keyAlg"`
	KeySize              int              `json:"keySize"`
	KeyStrength          int              `json:"keyStrength"`
	RevocationStatus     int              `json:"revocationStatus"`
	CrlRevocationStatus  int              `json:"crlRevocationStatus"`
	OcspRevocationStatus int              `json:"ocspRevocationStatus"`
	PEM                  string           `json:"raw"`

	Raw json.RawMessage `json:"-"`
}

func (c *ChainCert) UnmarshalJSON(b []byte) error {
	type plain ChainCert
	var wire struct {
		plain
		NotBefore *int64 `json:"notBefore"`
		NotAfter  *int64 `json:"notAfter"`
	}
	raw, err := decodeEntity(b, &wire, "chain cert")
	if err != nil {
		return err
	}
	*c = ChainCert(wire.plain)
	c.NotBefore = optionalMillis(wire.NotBefore)
	c.NotAfter = optionalMillis(wire.NotAfter)
	c.Raw = raw
	return nil
}
