package config

import (
	"testing"

	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
	"github.com/sirupsen/logrus"
)

func TestDefaultConfig(t *testing.T) {
	conf := NewDefaultConfig()

	if err := conf.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}

	mode, err := conf.Mode()
	if err != nil {
		t.Fatal(err)
	}
	if mode != hashgraph.GenerationThreshold {
		t.Fatalf("Default mode should be generation, not %s", mode)
	}

	if conf.Logger().Data["prefix"] != "linker" {
		t.Fatalf("Logger should carry the linker prefix")
	}
}

func TestConfigValidate(t *testing.T) {
	conf := NewTestConfig(t, logrus.DebugLevel)

	conf.AncientMode = "birth-round"
	if err := conf.Validate(); err != nil {
		t.Fatal(err)
	}

	conf.Linker = "lazy"
	if err := conf.Validate(); err == nil {
		t.Fatalf("Validate should reject unknown linkers")
	}

	conf.Linker = InOrderLinker
	conf.AncientMode = "age"
	if err := conf.Validate(); err == nil {
		t.Fatalf("Validate should reject unknown ancient modes")
	}
}

func TestLogLevel(t *testing.T) {
	if LogLevel("warn") != logrus.WarnLevel {
		t.Fatalf("warn should parse to WarnLevel")
	}
	if LogLevel("chatty") != logrus.DebugLevel {
		t.Fatalf("unknown levels should default to DebugLevel")
	}
}
