package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STRAPI_URL", "http://cms.local:1337/")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("TRACKING_LOOKUP_STYLE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StrapiURL != "http://cms.local:1337" {
		t.Errorf("StrapiURL = %q, want trailing slash trimmed", cfg.StrapiURL)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.FrontendURL != "http://localhost:3000" {
		t.Errorf("FrontendURL = %q", cfg.FrontendURL)
	}
	if cfg.SessionBackend != SessionBackendMemory {
		t.Errorf("SessionBackend = %q, want memory", cfg.SessionBackend)
	}
	if cfg.LookupStyle != LookupStyleFilters {
		t.Errorf("LookupStyle = %q, want filters", cfg.LookupStyle)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing strapi url", map[string]string{"STRAPI_URL": ""}},
		{"bad timeout", map[string]string{"STRAPI_TIMEOUT": "soon"}},
		{"unknown backend", map[string]string{"SESSION_BACKEND": "etcd"}},
		{"postgres without url", map[string]string{"SESSION_BACKEND": "postgres", "DATABASE_URL": ""}},
		{"unknown lookup style", map[string]string{"TRACKING_LOOKUP_STYLE": "graphql"}},
		{"zero rate limit", map[string]string{"LOGIN_RATE_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STRAPI_URL", "http://cms.local")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
