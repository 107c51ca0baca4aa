// Package handoff computes the value a MikroTik hotspot needs to finalize
// network access after the portal has verified a visitor's credentials.
package handoff

import (
	"crypto/md5"
	"encoding/hex"
)

// Mode selects which login method the handoff form submits to the router.
type Mode string

const (
	// ModeCHAP submits an MD5 challenge response; the password never leaves
	// the portal.
	ModeCHAP Mode = "chap"
	// ModePAP submits the password itself. Fallback when the router supplied
	// no usable challenge.
	ModePAP Mode = "pap"
)

// Result is what the handoff form needs to POST to the router's login URL.
type Result struct {
	Mode   Mode
	Digest string
}

// Compute builds the CHAP-MD5 response for the router-supplied challenge.
// chapID and chapChallenge are hex strings from the hotspot redirect. The
// digest is md5(ident ++ secret ++ challenge); that byte order is the wire
// contract with the router.
//
// Any missing or undecodable parameter degrades to PAP instead of failing:
// a handoff problem must never block access for already-verified credentials.
func Compute(password, chapID, chapChallenge string) Result {
	if chapID == "" || chapChallenge == "" {
		return Result{Mode: ModePAP}
	}

	ident, err := hex.DecodeString(chapID)
	if err != nil {
		return Result{Mode: ModePAP}
	}
	challenge, err := hex.DecodeString(chapChallenge)
	if err != nil {
		return Result{Mode: ModePAP}
	}

	h := md5.New()
	h.Write(ident)
	h.Write([]byte(password))
	h.Write(challenge)

	return Result{Mode: ModeCHAP, Digest: hex.EncodeToString(h.Sum(nil))}
}
