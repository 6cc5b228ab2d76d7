// File: internal/persistence/operator_totp.go
// Project: EC4X Engine
// Description: Operator TOTP enrollment and verification for the invite-admin flow (§4.12, §6.5)
// Version: 1.0.0
// Created: 2026-07-30

package persistence

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// EC4X has no player login surface of its own — players submit signed order
// packets, not passwords (§4.12) — so TOTP here guards the one human-facing
// admin action that matters: minting invite codes for a game. One operator
// secret, enrolled once per deployment, gates every CreateInvite call.

// EnrollOperator generates a new TOTP secret for issuer "ec4x" and returns
// its base32 secret (to be stored by the caller, e.g. in an environment
// variable) alongside a QR-code PNG for enrollment in an authenticator app.
func EnrollOperator(accountName string) (secret string, qrPNG []byte, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "ec4x",
		AccountName: accountName,
	})
	if err != nil {
		return "", nil, fmt.Errorf("persistence: generate operator totp secret: %w", err)
	}

	img, err := key.Image(256, 256)
	if err != nil {
		return "", nil, fmt.Errorf("persistence: render operator totp qr: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", nil, fmt.Errorf("persistence: encode operator totp qr: %w", err)
	}
	return key.Secret(), buf.Bytes(), nil
}

// VerifyOperatorCode reports whether code is a currently valid TOTP for
// secret, gating invite-minting commands on the CLI's admin surface.
func VerifyOperatorCode(secret, code string) bool {
	ok, _ := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return ok
}
