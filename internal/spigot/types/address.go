package types

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Address is a bech32 encoded account address.
type Address string

var (
	ErrEmptyAddress   = errors.New("address is empty")
	ErrAddressFormat  = errors.New("address is not valid bech32")
	ErrAddressPrefix  = errors.New("address has an unexpected prefix")
	ErrAddressPayload = errors.New("address payload has an unexpected length")
)

const addressPayloadLen = 20

// PubKeyToAddress derives the bech32 account address for a compressed
// secp256k1 public key: bech32(hrp, hash160(pubkey)).
func PubKeyToAddress(hrp string, pubKey []byte) (Address, error) {
	payload := btcutil.Hash160(pubKey)
	conv, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert address payload: %w", err)
	}
	encoded, err := bech32.Encode(hrp, conv)
	if err != nil {
		return "", fmt.Errorf("encode address: %w", err)
	}
	return Address(encoded), nil
}

// Validate checks that the address is well-formed bech32 with the
// expected human-readable prefix and a 20 byte payload.
func (a Address) Validate(hrp string) error {
	if len(a) == 0 {
		return ErrEmptyAddress
	}
	prefix, data, err := bech32.Decode(string(a))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAddressFormat, err)
	}
	if prefix != hrp {
		return fmt.Errorf("%w: want %q, got %q", ErrAddressPrefix, hrp, prefix)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAddressFormat, err)
	}
	if len(payload) != addressPayloadLen {
		return fmt.Errorf("%w: %d bytes", ErrAddressPayload, len(payload))
	}
	return nil
}

func (a Address) String() string {
	return string(a)
}
