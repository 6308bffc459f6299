package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mosaicnetworks/eventlinker/src/peers"
)

func execute(t *testing.T, args ...string) string {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestKeygenAndSimulate(t *testing.T) {
	datadir := t.TempDir()

	out := execute(t, "keygen", "--datadir", datadir, "--log", "error", "--moniker", "alice")
	if !strings.Contains(out, "Creator id:") {
		t.Fatalf("keygen should print the creator id, got %q", out)
	}

	if _, err := os.Stat(filepath.Join(datadir, "priv_key")); err != nil {
		t.Fatalf("keygen should write the private key: %v", err)
	}

	peerSet, err := peers.NewJSONPeerSet(datadir).PeerSet()
	if err != nil {
		t.Fatal(err)
	}
	if peerSet.Len() != 1 || peerSet.Peers[0].Moniker != "alice" {
		t.Fatalf("keygen should register the peer in peers.json")
	}

	out = execute(t, "simulate",
		"--datadir", datadir,
		"--log", "error",
		"--events", "300",
		"--json")
	if !strings.Contains(out, `"generated"`) || !strings.Contains(out, "300") {
		t.Fatalf("simulate should print a JSON report, got %q", out)
	}
}

func TestVersion(t *testing.T) {
	if out := execute(t, "version"); strings.TrimSpace(out) == "" {
		t.Fatalf("version should print something")
	}
}

func TestKeygenMalformedPeers(t *testing.T) {
	datadir := t.TempDir()

	peersFile := filepath.Join(datadir, "peers.json")
	if err := os.WriteFile(peersFile, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	RootCmd.SetOut(&bytes.Buffer{})
	RootCmd.SetArgs([]string{"keygen", "--datadir", datadir, "--log", "error"})
	if err := RootCmd.Execute(); err == nil {
		t.Fatalf("keygen should fail on a malformed peers.json")
	}

	if _, err := os.Stat(filepath.Join(datadir, "priv_key")); !os.IsNotExist(err) {
		t.Fatalf("keygen should not write a key when peers.json is unusable: %v", err)
	}

	// once peers.json is fixed, keygen goes through
	if err := os.Remove(peersFile); err != nil {
		t.Fatal(err)
	}
	execute(t, "keygen", "--datadir", datadir, "--log", "error")
}
