package ssllabs

// Bitfield types. Each keeps the integer it was decoded from in Bits so
// bits added upstream later are not lost.

// RevocationInfo lists the revocation information present in a certificate.
type RevocationInfo struct {
	Bits int
	CRL  bool // bit 0
	OCSP bool // bit 1
}

func NewRevocationInfo(n int) RevocationInfo {
	return RevocationInfo{Bits: n, CRL: bitSet(n, 0), OCSP: bitSet(n, 1)}
}

func (f *RevocationInfo) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "revocationInfo")
	*f = NewRevocationInfo(n)
	return err
}

// SGC is Server Gated Cryptography support.
type SGC struct {
	Bits      int
	Netscape  bool // bit 0
	Microsoft bool // bit 1
}

func NewSGC(n int) SGC {
	return SGC{Bits: n, Netscape: bitSet(n, 0), Microsoft: bitSet(n, 1)}
}

func (f *SGC) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "sgc")
	*f = NewSGC(n)
	return err
}

// CertIssues are the problems found with the leaf certificate.
type CertIssues struct {
	Bits              int
	NoChainOfTrust    bool // bit 0
	NotBefore         bool // bit 1, not yet valid
	NotAfter          bool // bit 2, expired
	HostnameMismatch  bool // bit 3
	Revoked           bool // bit 4
	BadCommonName     bool // bit 5
	SelfSigned        bool // bit 6
	Blacklisted       bool // bit 7
	InsecureSignature bool // bit 8
}

func NewCertIssues(n int) CertIssues {
	return CertIssues{
		Bits:              n,
		NoChainOfTrust:    bitSet(n, 0),
		NotBefore:         bitSet(n, 1),
		NotAfter:          bitSet(n, 2),
		HostnameMismatch:  bitSet(n, 3),
		Revoked:           bitSet(n, 4),
		BadCommonName:     bitSet(n, 5),
		SelfSigned:        bitSet(n, 6),
		Blacklisted:       bitSet(n, 7),
		InsecureSignature: bitSet(n, 8),
	}
}

func (f *CertIssues) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "cert issues")
	*f = NewCertIssues(n)
	return err
}

// ChainCertIssues are the problems found with one certificate of a chain.
type ChainCertIssues struct {
	Bits          int
	NotYetValid   bool // bit 0
	Expired       bool // bit 1
	WeakKey       bool // bit 2
	WeakSignature bool // bit 3
	Blacklisted   bool // bit 4
}

func NewChainCertIssues(n int) ChainCertIssues {
	return ChainCertIssues{
		Bits:          n,
		NotYetValid:   bitSet(n, 0),
		Expired:       bitSet(n, 1),
		WeakKey:       bitSet(n, 2),
		WeakSignature: bitSet(n, 3),
		Blacklisted:   bitSet(n, 4),
	}
}

func (f *ChainCertIssues) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "chain cert issues")
	*f = NewChainCertIssues(n)
	return err
}

// ChainIssues are the problems found with the chain as a whole.
type ChainIssues struct {
	Bits int
	// External certificates were added to build the chain.
	AddedExternal bool // bit 0
	// Set only when a chain could be built by adding missing intermediates.
	IncompleteChain bool // bit 1
	// Unrelated or duplicate certificates are present.
	Unrelated bool // bit 2
	// The certificates form a chain, in the wrong order.
	WrongOrder bool // bit 3
	// A self-signed root is included. Not set for self-signed leaves.
	SelfSignedRoot bool // bit 4
	// The certificates form a chain that could not be validated.
	CouldNotValidate bool // bit 5
}

func NewChainIssues(n int) ChainIssues {
	return ChainIssues{
		Bits:             n,
		AddedExternal:    bitSet(n, 0),
		IncompleteChain:  bitSet(n, 1),
		Unrelated:        bitSet(n, 2),
		WrongOrder:       bitSet(n, 3),
		SelfSignedRoot:   bitSet(n, 4),
		CouldNotValidate: bitSet(n, 5),
	}
}

func (f *ChainIssues) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "chain issues")
	*f = NewChainIssues(n)
	return err
}

// Delegation tells how the endpoint is reachable with and without the www
// prefix.
type Delegation struct {
	Bits        int
	NonPrefixed bool // bit 0
	Prefixed    bool // bit 1
}

func NewDelegation(n int) Delegation {
	return Delegation{Bits: n, NonPrefixed: bitSet(n, 0), Prefixed: bitSet(n, 1)}
}

func (f *Delegation) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "delegation")
	*f = NewDelegation(n)
	return err
}

// RenegSupport describes renegotiation support.
type RenegSupport struct {
	Bits                  int
	ClientInitiated       bool // bit 0, insecure client-initiated renegotiation
	Secure                bool // bit 1
	SecureClientInitiated bool // bit 2
	ServerRequiresSecure  bool // bit 3
}

func NewRenegSupport(n int) RenegSupport {
	return RenegSupport{
		Bits:                  n,
		ClientInitiated:       bitSet(n, 0),
		Secure:                bitSet(n, 1),
		SecureClientInitiated: bitSet(n, 2),
		ServerRequiresSecure:  bitSet(n, 3),
	}
}

func (f *RenegSupport) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "renegSupport")
	*f = NewRenegSupport(n)
	return err
}

type CompressionMethods struct {
	Bits    int
	Deflate bool // bit 0
}

func NewCompressionMethods(n int) CompressionMethods {
	return CompressionMethods{Bits: n, Deflate: bitSet(n, 0)}
}

func (f *CompressionMethods) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "compressionMethods")
	*f = NewCompressionMethods(n)
	return err
}

type SessionTickets struct {
	Bits       int
	Supported  bool // bit 0
	Faulty     bool // bit 1
	Intolerant bool // bit 2
}

func NewSessionTickets(n int) SessionTickets {
	return SessionTickets{Bits: n, Supported: bitSet(n, 0), Faulty: bitSet(n, 1), Intolerant: bitSet(n, 2)}
}

func (f *SessionTickets) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "sessionTickets")
	*f = NewSessionTickets(n)
	return err
}

// ForwardSecrecy is derived from the handshake simulations.
type ForwardSecrecy struct {
	Bits int
	// At least one simulated browser negotiated a FS suite.
	Negotiated bool // bit 0
	// FS is achieved with modern clients, e.g. ECDHE but no DHE.
	ModernAchieved bool // bit 1
	// All simulated clients achieve FS.
	AllAchieved bool // bit 2
}

func NewForwardSecrecy(n int) ForwardSecrecy {
	return ForwardSecrecy{Bits: n, Negotiated: bitSet(n, 0), ModernAchieved: bitSet(n, 1), AllAchieved: bitSet(n, 2)}
}

func (f *ForwardSecrecy) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "forwardSecrecy")
	*f = NewForwardSecrecy(n)
	return err
}

// ProtocolIntolerance lists the protocol versions the server is intolerant
// to.
type ProtocolIntolerance struct {
	Bits    int
	TLS10   bool // bit 0
	TLS11   bool // bit 1
	TLS12   bool // bit 2
	TLS13   bool // bit 3
	TLS1152 bool // bit 4
	TLS2152 bool // bit 5
}

func NewProtocolIntolerance(n int) ProtocolIntolerance {
	return ProtocolIntolerance{
		Bits:    n,
		TLS10:   bitSet(n, 0),
		TLS11:   bitSet(n, 1),
		TLS12:   bitSet(n, 2),
		TLS13:   bitSet(n, 3),
		TLS1152: bitSet(n, 4),
		TLS2152: bitSet(n, 5),
	}
}

func (f *ProtocolIntolerance) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "protocolIntolerance")
	*f = NewProtocolIntolerance(n)
	return err
}

type MiscIntolerance struct {
	Bits                     int
	ExtensionIntolerance     bool // bit 0
	LongHandshakeIntolerance bool // bit 1
	LongHandshakeWorkaround  bool // bit 2, the workaround succeeded
}

func NewMiscIntolerance(n int) MiscIntolerance {
	return MiscIntolerance{
		Bits:                     n,
		ExtensionIntolerance:     bitSet(n, 0),
		LongHandshakeIntolerance: bitSet(n, 1),
		LongHandshakeWorkaround:  bitSet(n, 2),
	}
}

func (f *MiscIntolerance) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "miscIntolerance")
	*f = NewMiscIntolerance(n)
	return err
}

// HasSct tells where embedded certificate transparency information was
// found.
type HasSct struct {
	Bits           int
	InCertificate  bool // bit 0
	InStapledOCSP  bool // bit 1
	InTLSExtension bool // bit 2, in the ServerHello
}

func NewHasSct(n int) HasSct {
	return HasSct{Bits: n, InCertificate: bitSet(n, 0), InStapledOCSP: bitSet(n, 1), InTLSExtension: bitSet(n, 2)}
}

func (f *HasSct) UnmarshalJSON(b []byte) error {
	n, err := decodeBits(b, "hasSct")
	*f = NewHasSct(n)
	return err
}
