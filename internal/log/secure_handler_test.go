package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestSecureHandlerMasksKeys tests masking by attribute key.
func TestSecureHandlerMasksKeys(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		key  string
	}{
		{"token key", "token"},
		{"password key", "password"},
		{"composite token key", "storedToken"},
		{"composite password key", "userPassword"},
		{"credentials key", "credentials"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("test", tc.key, "super-secret-value")

			output := buf.String()
			if strings.Contains(output, "super-secret-value") {
				t.Errorf("sensitive value leaked: %s", output)
			}
			if !strings.Contains(output, MaskValue) {
				t.Errorf("expected mask value in output: %s", output)
			}
		})
	}
}

// TestSecureHandlerMasksValues tests masking by value pattern.
func TestSecureHandlerMasksValues(t *testing.T) {
	t.Parallel()

	t.Run("jwt value is masked regardless of key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

		jwt := "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VybmFtZSI6ImJvYiJ9.abc123"
		logger.Info("restoring session", "stored", jwt)

		if strings.Contains(buf.String(), jwt) {
			t.Errorf("jwt leaked: %s", buf.String())
		}
	})

	t.Run("ordinary values pass through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

		logger.Info("fetched feed", "username", "bob", "stories", 25)

		output := buf.String()
		if !strings.Contains(output, "bob") || !strings.Contains(output, "25") {
			t.Errorf("ordinary attributes must not be masked: %s", output)
		}
	})
}

// TestSecureHandlerGroups tests masking inside attribute groups.
func TestSecureHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("login", slog.Group("session",
		slog.String("username", "bob"),
		slog.String("token", "secret-token-value"),
	))

	output := buf.String()
	if strings.Contains(output, "secret-token-value") {
		t.Errorf("grouped sensitive value leaked: %s", output)
	}
	if !strings.Contains(output, "bob") {
		t.Errorf("grouped ordinary value must pass through: %s", output)
	}
}

// TestNewSecureLogger tests the verbosity levels.
func TestNewSecureLogger(t *testing.T) {
	t.Parallel()

	t.Run("non-verbose drops info records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, false)

		logger.Info("should be dropped")
		logger.Warn("should appear")

		output := buf.String()
		if strings.Contains(output, "should be dropped") {
			t.Error("info record logged at warn level")
		}
		if !strings.Contains(output, "should appear") {
			t.Error("warn record missing")
		}
	})

	t.Run("verbose includes debug records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)

		logger.Debug("debug detail")
		if !strings.Contains(buf.String(), "debug detail") {
			t.Error("debug record missing in verbose mode")
		}
	})
}
