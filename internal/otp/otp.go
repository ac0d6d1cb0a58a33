// Package otp implements time-based one-time passcode generation and verification.
//
// The shared secret is generated once per process and held only in memory, so
// issued codes are valid for the lifetime of that process run. Verification by
// code alone is stateless; when a recipient address is known, issued codes are
// additionally recorded in Redis so a code can be checked against the address
// it was dispatched to.
package otp

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
)

const (
	// period is the TOTP time step in seconds.
	period = 30
	// skew is the tolerance in steps on either side of the current step.
	skew = 1
	// bindTTL covers the full validity window of an issued code.
	bindTTL = time.Duration(period*(skew+2)) * time.Second
)

var validateOpts = totp.ValidateOpts{
	Period:    period,
	Skew:      skew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// Service generates and verifies 6-digit time-stepped codes.
type Service struct {
	secret string
	rdb    *redis.Client
	now    func() time.Time
}

// NewService creates a Service with a fresh process-lifetime secret.
// rdb may be nil; recipient binding is then unavailable.
func NewService(rdb *redis.Client) (*Service, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "paperplane",
		AccountName: "otp",
		SecretSize:  20,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP secret: %w", err)
	}

	return &Service{
		secret: key.Secret(),
		rdb:    rdb,
		now:    time.Now,
	}, nil
}

// Generate returns the 6-digit code for the current time step.
func (s *Service) Generate() (string, error) {
	return totp.GenerateCodeCustom(s.secret, s.now(), validateOpts)
}

// Validate reports whether code matches the current step or one step on
// either side of it.
func (s *Service) Validate(code string) bool {
	ok, err := totp.ValidateCustom(code, s.secret, s.now(), validateOpts)
	return err == nil && ok
}

func bindKey(email string) string {
	return "otp:" + email
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Bind records that code was issued to email, for the code's validity window.
func (s *Service) Bind(ctx context.Context, email, code string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, bindKey(email), hashCode(code), bindTTL).Err()
}

// ValidateFor verifies code as a current TOTP value and additionally requires
// that it is the code most recently issued to email.
func (s *Service) ValidateFor(ctx context.Context, email, code string) (bool, error) {
	if !s.Validate(code) {
		return false, nil
	}
	if s.rdb == nil {
		return false, errors.New("recipient binding unavailable: no redis client")
	}

	stored, err := s.rdb.Get(ctx, bindKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	match := subtle.ConstantTimeCompare([]byte(stored), []byte(hashCode(code))) == 1
	return match, nil
}
