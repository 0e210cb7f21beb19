package signer

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Signer is an interface that defines methods for signing personal messages and retrieving the signer's address.
type Signer interface {
	// Sign signs the given data as an EIP-191 personal message and returns the signature.
	//
	// Parameters:
	// - data: the raw message bytes.
	//
	// Returns:
	// - []byte: the 65 byte signature with V in {27, 28}.
	// - error: an error if the signing process fails.
	Sign(data []byte) ([]byte, error)

	// Address returns the signer's address.
	//
	// Returns:
	// - common.Address: the signer's address.
	Address() common.Address
}

// signer is a concrete implementation of the Signer interface.
type signer struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewSigner creates a new signer instance with the given private key.
//
// Parameters:
// - privateKey: the private key to be used for signing.
//
// Returns:
// - Signer: a new signer instance.
// - error: an error if the private key is not valid.
func NewSigner(privateKey *ecdsa.PrivateKey) (Signer, error) {
	if privateKey == nil {
		return nil, errors.New("private key is nil")
	}

	pubKeyECDSA, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("cannot assign public key to ECDSA")
	}

	return &signer{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(*pubKeyECDSA),
	}, nil
}

// NewSignerFromHex parses a hex encoded private key, with or without 0x prefix.
func NewSignerFromHex(key string) (Signer, error) {
	if len(key) >= 2 && key[0] == '0' && (key[1] == 'x' || key[1] == 'X') {
		key = key[2:]
	}
	privateKey, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}
	return NewSigner(privateKey)
}

// PersonalMessageHash returns keccak256("\x19Ethereum Signed Message:\n" + len + data).
func PersonalMessageHash(data []byte) []byte {
	return crypto.Keccak256([]byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(data), data)))
}

func (s *signer) Sign(data []byte) ([]byte, error) {
	signature, err := crypto.Sign(PersonalMessageHash(data), s.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign message")
	}
	signature[64] += 27 // Transform V from 0/1 to 27/28 according to the yellow paper

	return signature, nil
}

func (s *signer) Address() common.Address {
	return s.address
}
