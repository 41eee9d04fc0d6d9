package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

var configKeys = []string{
	"PORT", "STORAGE_DRIVER", "NOTIFIER_DRIVER", "APPROVAL_THRESHOLD", "PRICE_CHANGE_EPSILON",
	"ADVISOR_TIMEOUT", "SLOT_LOCKS_TABLE", "BOOKINGS_TABLE",
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetEnv(t, configKeys...)
		c, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Port != 8080 || c.StorageDriver != StorageDynamoDB || c.NotifierDriver != NotifierLog {
			t.Fatalf("unexpected defaults: %+v", c)
		}
		if c.AdvisorTimeout != 20*time.Second || c.Tables().SlotLocks != "slot_locks" {
			t.Fatalf("unexpected defaults: %+v", c)
		}
		pc, _ := c.PricingConfig()
		if pc.ApprovalThreshold != 9 {
			t.Fatalf("expected threshold 9, got %d", pc.ApprovalThreshold)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		unsetEnv(t, configKeys...)
		t.Setenv("STORAGE_DRIVER", " Memory ")
		t.Setenv("NOTIFIER_DRIVER", "amqp")
		t.Setenv("APPROVAL_THRESHOLD", "12")
		t.Setenv("PRICE_CHANGE_EPSILON", "0.5")
		t.Setenv("BOOKINGS_TABLE", "bookings-prod")
		c, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.StorageDriver != StorageMemory || c.Tables().Bookings != "bookings-prod" {
			t.Fatalf("unexpected config: %+v", c)
		}
		eps, _ := c.Epsilon()
		if eps.String() != "0.5" {
			t.Fatalf("unexpected epsilon: %s", eps)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := map[string][2]string{
			"storage":   {"STORAGE_DRIVER", "postgres"},
			"notifier":  {"NOTIFIER_DRIVER", "pigeon"},
			"threshold": {"APPROVAL_THRESHOLD", "0"},
			"epsilon":   {"PRICE_CHANGE_EPSILON", "abc"},
		}
		for name, kv := range cases {
			t.Run(name, func(t *testing.T) {
				unsetEnv(t, configKeys...)
				t.Setenv("STORAGE_DRIVER", "memory")
				t.Setenv("NOTIFIER_DRIVER", "log")
				t.Setenv(kv[0], kv[1])
				if _, err := Load(); err == nil {
					t.Fatalf("expected error for %s=%s", kv[0], kv[1])
				}
			})
		}
	})

	t.Run("bad number is reported by envconfig", func(t *testing.T) {
		unsetEnv(t, configKeys...)
		t.Setenv("PORT", "http")
		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "PORT") {
			t.Fatalf("expected PORT error, got %v", err)
		}
	})
}
