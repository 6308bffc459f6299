package keys

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestSimpleKeyfile(t *testing.T) {
	dir := t.TempDir()

	simpleKeyfile := NewSimpleKeyfile(filepath.Join(dir, "keys", "priv_key"))

	// Try a read, should get nothing
	key, err := simpleKeyfile.ReadKey()
	if err == nil {
		t.Fatalf("ReadKey should generate an error")
	}
	if key != nil {
		t.Fatalf("key is not nil")
	}

	key, _ = GenerateECDSAKey()

	if err := simpleKeyfile.WriteKey(key); err != nil {
		t.Fatalf("err: %v", err)
	}

	nKey, err := simpleKeyfile.ReadKey()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if nKey.D.Cmp(key.D) != 0 || nKey.X.Cmp(key.X) != 0 || nKey.Y.Cmp(key.Y) != 0 {
		t.Fatalf("Keys do not match")
	}
}

func TestFilePermissions(t *testing.T) {
	dir := t.TempDir()

	key, _ := GenerateECDSAKey()
	rawKey := []byte(PrivateKeyHex(key))

	badKeyPath := filepath.Join(dir, "priv_key_bad")
	for _, fm := range []os.FileMode{0777, 0666, 0644, 0440} {
		os.WriteFile(badKeyPath, rawKey, fm)
		os.Chmod(badKeyPath, fm)

		if _, err := NewSimpleKeyfile(badKeyPath).ReadKey(); err == nil {
			t.Fatalf("%o || ReadKey should return permissions error", fm)
		}
	}

	goodKeyPath := filepath.Join(dir, "priv_key_good")
	for _, fm := range []os.FileMode{0700, 0600, 0400} {
		os.WriteFile(goodKeyPath, rawKey, fm)
		os.Chmod(goodKeyPath, fm)

		if _, err := NewSimpleKeyfile(goodKeyPath).ReadKey(); err != nil {
			t.Fatalf("%o || ReadKey should not return error. Got %v", fm, err)
		}
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	key, err := GenerateECDSAKey()
	if err != nil {
		t.Fatal(err)
	}

	pubBytes := FromPublicKey(&key.PublicKey)
	if len(pubBytes) != 65 {
		t.Fatalf("Uncompressed secp256k1 keys should be 65 bytes, not %d", len(pubBytes))
	}

	pub := ToPublicKey(pubBytes)
	if pub == nil || !bytes.Equal(FromPublicKey(pub), pubBytes) {
		t.Fatalf("ToPublicKey should invert FromPublicKey")
	}

	if PublicKeyID(pubBytes) != PublicKeyID(FromPublicKey(pub)) {
		t.Fatalf("PublicKeyID should be deterministic")
	}

	if ToPublicKey([]byte("garbage")) != nil {
		t.Fatalf("ToPublicKey should reject bytes that are not a point")
	}
}

func TestParsePrivateKeyErrors(t *testing.T) {
	if _, err := ParsePrivateKey([]byte{1, 2, 3}); err == nil {
		t.Fatalf("ParsePrivateKey should reject short keys")
	}
	if _, err := ParsePrivateKey(make([]byte, 32)); err == nil {
		t.Fatalf("ParsePrivateKey should reject a zero key")
	}
}
