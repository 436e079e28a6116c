// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "BLOGICUM_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/blogicum.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/blogicum.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.SiteName != "Blogicum" {
		t.Errorf("SiteName = %q, want %q", cfg.SiteName, "Blogicum")
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "BLOGICUM_SESSION_SECRET", customSecret)
	setEnv(t, "BLOGICUM_DB_PATH", "/custom/path.db")
	setEnv(t, "BLOGICUM_SERVER_HOST", "0.0.0.0")
	setEnv(t, "BLOGICUM_SERVER_PORT", "3000")
	setEnv(t, "BLOGICUM_ENV", "production")
	setEnv(t, "BLOGICUM_SITE_NAME", "My Blog")
	setEnv(t, "BLOGICUM_DO_SEED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production env")
	}
	if cfg.SiteName != "My Blog" {
		t.Errorf("SiteName = %q, want %q", cfg.SiteName, "My Blog")
	}
	if cfg.DoSeed {
		t.Error("DoSeed = true, want false")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without BLOGICUM_SESSION_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "BLOGICUM_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a session secret below the minimum length")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "localhost", ServerPort: 9000}
	if got := cfg.ServerAddr(); got != "localhost:9000" {
		t.Errorf("ServerAddr() = %q, want %q", got, "localhost:9000")
	}
}
