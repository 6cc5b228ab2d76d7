// File: internal/crypto/nip44.go
// Project: EC4X Engine
// Description: NIP-44 v2 style encrypted envelope (X25519+ChaCha20+HMAC) (§4.12, §8)
// Version: 1.0.0
// Created: 2026-07-30

// Package crypto implements the encrypted envelope the transport layer
// wraps every order packet and state payload in (§4.12). It follows the
// NIP-44 v2 construction but swaps the curve: conversation keys come from
// an X25519 Diffie-Hellman instead of secp256k1, since the engine already
// has no other use for secp256k1 and X25519 is what golang.org/x/crypto
// gives us directly. Everything downstream of the shared secret (HKDF
// split, ChaCha20, HMAC, padding) matches the published NIP-44 algorithm
// so the derivation can be checked against its published test vectors.
package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

const (
	// Version is the envelope's leading version byte.
	Version byte = 2

	conversationSalt = "nip44-v2"

	keySize      = 32
	nonceSize    = 32 // per-message nonce carried in the envelope
	chachaKeyLen = 32
	chachaNonceLen = chacha20.NonceSize // 12
	hmacKeyLen   = 32
	messageKeysLen = chachaKeyLen + chachaNonceLen + hmacKeyLen // 76

	minPlaintext = 1
	maxPlaintext = 65535
)

var (
	// ErrMACMismatch is returned by Decrypt when the envelope's MAC does
	// not authenticate, per §7 ("Transport errors: MAC failure on inbound
	// envelope").
	ErrMACMismatch = errors.New("crypto: mac mismatch")
	// ErrBadVersion is returned when the envelope's version byte is not
	// the one this package produces.
	ErrBadVersion = errors.New("crypto: unsupported envelope version")
	// ErrMalformedEnvelope covers any envelope too short to contain its
	// fixed-size fields, or whose decoded length prefix is out of range.
	ErrMalformedEnvelope = errors.New("crypto: malformed envelope")
	// ErrPlaintextSize is returned by Encrypt for inputs outside 1..65535
	// bytes (§8: "for 1 <= |m| <= 65535").
	ErrPlaintextSize = errors.New("crypto: plaintext must be 1..65535 bytes")
)

// ConversationKey derives the symmetric key two parties share from one
// side's private scalar and the other's public key. Because X25519 is
// commutative, conversationKey(privA, pubB) == conversationKey(privB, pubA)
// (§8 scenario 2).
func ConversationKey(priv, pub [32]byte) ([32]byte, error) {
	shared, err := curve25519.X25519(priv[:], pub[:])
	if err != nil {
		var zero [32]byte
		return zero, err
	}
	var out [32]byte
	r := hkdf.Extract(sha256.New, shared, []byte(conversationSalt))
	copy(out[:], r)
	return out, nil
}

// messageKeys expands the conversation key against a per-message nonce
// into the ChaCha20 key, ChaCha20 nonce, and HMAC key (§8 scenario 3).
func messageKeys(conversationKey [32]byte, nonce []byte) (chachaKey, chachaNonce, hmacKey []byte, err error) {
	r := hkdf.Expand(sha256.New, conversationKey[:], nonce)
	buf := make([]byte, messageKeysLen)
	if _, err = io.ReadFull(r, buf); err != nil {
		return nil, nil, nil, err
	}
	return buf[0:chachaKeyLen], buf[chachaKeyLen : chachaKeyLen+chachaNonceLen], buf[chachaKeyLen+chachaNonceLen:], nil
}

// calcPaddedLen returns the padded bucket size for a plaintext of length l
// (§8 scenario 4: calc_padded_len(1)=32, (32)=32, (33)=64, (256)=256,
// (257)=320). Buckets grow in fixed 32-byte chunks up to 256 bytes, then in
// chunks of nextPowerOfTwo/8 beyond that, so the padding overhead shrinks
// proportionally as messages grow.
func calcPaddedLen(l int) int {
	if l <= 32 {
		return 32
	}
	nextPower := 1 << (bits.Len(uint(l-1)) )
	chunk := 32
	if nextPower > 256 {
		chunk = nextPower / 8
	}
	return chunk * ((l-1)/chunk + 1)
}

// pad builds the length-prefixed, zero-padded plaintext block that gets
// encrypted: a 16-bit big-endian length prefix, the plaintext itself, and
// zero filler out to calcPaddedLen(len(plaintext)) (§4.12).
func pad(plaintext []byte) []byte {
	padded := calcPaddedLen(len(plaintext))
	out := make([]byte, 2+padded)
	binary.BigEndian.PutUint16(out[0:2], uint16(len(plaintext)))
	copy(out[2:], plaintext)
	return out
}

// unpad reverses pad, returning ErrMalformedEnvelope if the embedded length
// does not fit the decrypted buffer.
func unpad(padded []byte) ([]byte, error) {
	if len(padded) < 2 {
		return nil, ErrMalformedEnvelope
	}
	l := int(binary.BigEndian.Uint16(padded[0:2]))
	if l < minPlaintext || 2+l > len(padded) {
		return nil, ErrMalformedEnvelope
	}
	return padded[2 : 2+l], nil
}

// Encrypt seals plaintext for the recipient's long-term public key using a
// fresh one-time ephemeral keypair, returning the wire envelope
// v || ephemeral_pubkey || nonce || ciphertext || mac (§4.12).
func Encrypt(plaintext []byte, recipientPub [32]byte) ([]byte, error) {
	if len(plaintext) < minPlaintext || len(plaintext) > maxPlaintext {
		return nil, ErrPlaintextSize
	}

	var ephPriv, ephPub [32]byte
	if _, err := io.ReadFull(rand.Reader, ephPriv[:]); err != nil {
		return nil, err
	}
	clamp(&ephPriv)
	pub, err := curve25519.X25519(ephPriv[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}
	copy(ephPub[:], pub)

	convKey, err := ConversationKey(ephPriv, recipientPub)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	chachaKey, chachaNonce, hmacKey, err := messageKeys(convKey, nonce)
	if err != nil {
		return nil, err
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher, err := chacha20.NewUnauthenticatedCipher(chachaKey, chachaNonce)
	if err != nil {
		return nil, err
	}
	cipher.XORKeyStream(ciphertext, padded)

	mac := computeMAC(hmacKey, nonce, ciphertext)

	env := make([]byte, 0, 1+keySize+nonceSize+len(ciphertext)+sha256.Size)
	env = append(env, Version)
	env = append(env, ephPub[:]...)
	env = append(env, nonce...)
	env = append(env, ciphertext...)
	env = append(env, mac...)
	return env, nil
}

// Decrypt opens an envelope produced by Encrypt using the recipient's
// long-term private key, verifying the MAC before decrypting (§4.12:
// "Verification rejects on MAC mismatch, bad version, or undecodable
// length prefix").
func Decrypt(envelope []byte, recipientPriv [32]byte) ([]byte, error) {
	minLen := 1 + keySize + nonceSize + sha256.Size
	if len(envelope) < minLen {
		return nil, ErrMalformedEnvelope
	}
	if envelope[0] != Version {
		return nil, ErrBadVersion
	}

	off := 1
	var ephPub [32]byte
	copy(ephPub[:], envelope[off:off+keySize])
	off += keySize

	nonce := envelope[off : off+nonceSize]
	off += nonceSize

	mac := envelope[len(envelope)-sha256.Size:]
	ciphertext := envelope[off : len(envelope)-sha256.Size]

	convKey, err := ConversationKey(recipientPriv, ephPub)
	if err != nil {
		return nil, err
	}
	chachaKey, chachaNonce, hmacKey, err := messageKeys(convKey, nonce)
	if err != nil {
		return nil, err
	}

	if !hmac.Equal(mac, computeMAC(hmacKey, nonce, ciphertext)) {
		return nil, ErrMACMismatch
	}

	padded := make([]byte, len(ciphertext))
	cipher, err := chacha20.NewUnauthenticatedCipher(chachaKey, chachaNonce)
	if err != nil {
		return nil, err
	}
	cipher.XORKeyStream(padded, ciphertext)

	return unpad(padded)
}

func computeMAC(hmacKey, nonce, ciphertext []byte) []byte {
	h := hmac.New(sha256.New, hmacKey)
	h.Write(nonce)
	h.Write(ciphertext)
	return h.Sum(nil)
}

// GenerateKeypair returns a fresh X25519 private/public keypair for a
// player's long-term transport identity.
func GenerateKeypair() (priv, pub [32]byte, err error) {
	if _, err = io.ReadFull(rand.Reader, priv[:]); err != nil {
		return
	}
	clamp(&priv)
	p, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return
	}
	copy(pub[:], p)
	return
}

// clamp applies the X25519 scalar clamping bits (RFC 7748 §5) so raw random
// bytes are a valid Curve25519 private scalar.
func clamp(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
