package logrus

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogrusLogger_Defaults(t *testing.T) {
	logger, err := NewLogrusLogger(Options{})
	if err != nil {
		t.Fatalf("NewLogrusLogger returned error: %v", err)
	}

	if logger.logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logger.logger.GetLevel())
	}
}

func TestNewLogrusLogger_InvalidOptions(t *testing.T) {
	if _, err := NewLogrusLogger(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := NewLogrusLogger(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLogrusLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogrusLogger(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("NewLogrusLogger returned error: %v", err)
	}

	logger.Info("Discovery completed", map[string]interface{}{
		"url":   "https://example.com",
		"feeds": 2,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "Discovery completed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["url"] != "https://example.com" {
		t.Errorf("url = %v", entry["url"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestLogrusLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogrusLogger(Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("NewLogrusLogger returned error: %v", err)
	}

	logger.Debug("hidden debug", nil)
	logger.Info("hidden info", nil)
	logger.Warn("visible warn", map[string]interface{}{"key": "cache:1"})
	logger.Error("visible error", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn were written: %s", out)
	}
	if !strings.Contains(out, "visible warn") || !strings.Contains(out, "visible error") {
		t.Errorf("expected warn and error output, got: %s", out)
	}
}

func TestNewQuietLogger(t *testing.T) {
	logger := NewQuietLogger()

	// must not panic or write anywhere
	logger.Debug("test debug", nil)
	logger.Info("test info", map[string]interface{}{"user": "john"})
	logger.Warn("test warn", nil)
	logger.Error("test error", map[string]interface{}{"code": 500})
}
