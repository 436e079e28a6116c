// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"testing"
	"time"
)

// testLoginProtectionConfig returns a config with generous IP limits so
// tests are not slowed down by the per-IP limiter.
func testLoginProtectionConfig(maxAttempts int, lockoutDuration, attemptWindow time.Duration) LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       1000,
		IPBurst:           1000,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockoutDuration,
		AttemptWindow:     attemptWindow,
	}
}

func TestDefaultLoginProtectionConfig(t *testing.T) {
	cfg := DefaultLoginProtectionConfig()

	if cfg.IPRateLimit != 0.5 {
		t.Errorf("IPRateLimit = %v, want 0.5", cfg.IPRateLimit)
	}
	if cfg.IPBurst != 5 {
		t.Errorf("IPBurst = %d, want 5", cfg.IPBurst)
	}
	if cfg.MaxFailedAttempts != 5 {
		t.Errorf("MaxFailedAttempts = %d, want 5", cfg.MaxFailedAttempts)
	}
	if cfg.LockoutDuration != 15*time.Minute {
		t.Errorf("LockoutDuration = %v, want 15m", cfg.LockoutDuration)
	}
	if cfg.AttemptWindow != 15*time.Minute {
		t.Errorf("AttemptWindow = %v, want 15m", cfg.AttemptWindow)
	}
}

func TestNewLoginProtectionDefaultValues(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{})

	if lp.maxFailedAttempts != 5 {
		t.Errorf("maxFailedAttempts = %d, want 5", lp.maxFailedAttempts)
	}
	if lp.lockoutDuration != 15*time.Minute {
		t.Errorf("lockoutDuration = %v, want 15m", lp.lockoutDuration)
	}
	if lp.attemptWindow != 15*time.Minute {
		t.Errorf("attemptWindow = %v, want 15m", lp.attemptWindow)
	}
}

func TestLoginProtectionAccountLockout(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(3, 100*time.Millisecond, time.Minute))
	username := "author"

	if locked, _ := lp.IsAccountLocked(username); locked {
		t.Error("fresh account should not be locked")
	}

	lp.RecordFailedAttempt(username)
	lp.RecordFailedAttempt(username)
	if locked, _ := lp.IsAccountLocked(username); locked {
		t.Error("account locked before reaching max attempts")
	}
	if got := lp.GetRemainingAttempts(username); got != 1 {
		t.Errorf("GetRemainingAttempts = %d, want 1", got)
	}

	locked, duration := lp.RecordFailedAttempt(username)
	if !locked {
		t.Error("third failure should lock the account")
	}
	if duration != 100*time.Millisecond {
		t.Errorf("lockout duration = %v, want 100ms", duration)
	}
	if locked, _ := lp.IsAccountLocked(username); !locked {
		t.Error("account should report locked after max failed attempts")
	}

	time.Sleep(150 * time.Millisecond)
	if locked, _ := lp.IsAccountLocked(username); locked {
		t.Error("lockout should expire after lockout duration")
	}
}

func TestLoginProtectionLockoutBackoff(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(2, time.Minute, time.Hour))
	username := "author"

	lp.RecordFailedAttempt(username)
	_, first := lp.RecordFailedAttempt(username)
	if first != time.Minute {
		t.Errorf("first lockout = %v, want 1m", first)
	}

	lp.RecordFailedAttempt(username)
	_, second := lp.RecordFailedAttempt(username)
	if second != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", second)
	}
}

func TestLoginProtectionSuccessfulLoginResets(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(3, time.Minute, time.Minute))
	username := "author"

	lp.RecordFailedAttempt(username)
	lp.RecordFailedAttempt(username)
	lp.RecordSuccessfulLogin(username)

	if got := lp.GetRemainingAttempts(username); got != 3 {
		t.Errorf("GetRemainingAttempts after success = %d, want 3", got)
	}
	if locked, _ := lp.IsAccountLocked(username); locked {
		t.Error("account should not be locked after successful login")
	}
}
