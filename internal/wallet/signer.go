// Package wallet signs backend sign-in messages with the wallet key.
//
// KeySigner produces Neo secp256r1 signatures and derives Neo "N..."
// addresses. The DFX and LOCK backends identify users by DeFiChain "df1..."
// addresses and verify signatures with that chain's scheme, so against the
// real backends the address must be overridden and the signature must come
// from a wallet speaking that scheme. StaticSigner carries such an externally
// produced address and signature; KeySigner serves local backends and tests.
package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
)

// Signer proves control of a wallet address.
type Signer interface {
	// Address returns the address the backends know the user by.
	Address() string
	// SignMessage signs msg and returns the encoded signature.
	SignMessage(msg string) (string, error)
}

// KeySigner signs with a secp256r1 key held in memory.
type KeySigner struct {
	key     *keys.PrivateKey
	address string
}

// NewKeySigner imports a WIF-encoded private key. address overrides the
// key-derived address, for backends that know the user by a different
// chain's address.
func NewKeySigner(wif, address string) (*KeySigner, error) {
	key, err := keys.NewPrivateKeyFromWIF(strings.TrimSpace(wif))
	if err != nil {
		return nil, fmt.Errorf("wallet: import key: %w", err)
	}
	return newKeySigner(key, address), nil
}

// GenerateKeySigner creates a signer with a fresh random key.
func GenerateKeySigner() (*KeySigner, error) {
	key, err := keys.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("wallet: generate key: %w", err)
	}
	return newKeySigner(key, ""), nil
}

func newKeySigner(key *keys.PrivateKey, address string) *KeySigner {
	if address == "" {
		address = key.Address()
	}
	return &KeySigner{key: key, address: address}
}

// Address returns the signer address.
func (s *KeySigner) Address() string {
	return s.address
}

// PublicKey returns the compressed public key, hex-encoded.
func (s *KeySigner) PublicKey() string {
	return hex.EncodeToString(s.key.PublicKey().Bytes())
}

// WIF exports the private key.
func (s *KeySigner) WIF() string {
	return s.key.WIF()
}

// SignMessage signs the SHA-256 digest of msg and returns the hex signature.
func (s *KeySigner) SignMessage(msg string) (string, error) {
	if msg == "" {
		return "", fmt.Errorf("wallet: message is empty")
	}
	return hex.EncodeToString(s.key.Sign([]byte(msg))), nil
}

// VerifyMessage checks a signature produced by SignMessage.
func VerifyMessage(publicKeyHex, msg, signatureHex string) (bool, error) {
	pub, err := keys.NewPublicKeyFromString(publicKeyHex)
	if err != nil {
		return false, fmt.Errorf("wallet: parse public key: %w", err)
	}
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false, fmt.Errorf("wallet: decode signature: %w", err)
	}
	digest := sha256.Sum256([]byte(msg))
	return pub.Verify(sig, digest[:]), nil
}

// StaticSigner returns a fixed address and signature, for signatures
// produced by an external wallet.
type StaticSigner struct {
	Addr      string
	Signature string
}

// Address returns the fixed address.
func (s StaticSigner) Address() string { return s.Addr }

// SignMessage returns the fixed signature.
func (s StaticSigner) SignMessage(string) (string, error) {
	if s.Signature == "" {
		return "", fmt.Errorf("wallet: no signature configured")
	}
	return s.Signature, nil
}
