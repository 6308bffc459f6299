package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mosaicnetworks/eventlinker/src/crypto/keys"
	"github.com/mosaicnetworks/eventlinker/src/peers"
	"github.com/spf13/cobra"
)

// NewKeygenCmd produces a KeygenCmd which creates a creator key and registers
// it in peers.json
func NewKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen",
		Short:   "Create a creator key and add it to peers.json",
		PreRunE: loadConfig,
		RunE:    keygen,
	}

	AddKeygenFlags(cmd)

	return cmd
}

//AddKeygenFlags adds flags to the keygen command
func AddKeygenFlags(cmd *cobra.Command) {
	cmd.Flags().String("moniker", _config.Moniker, "Name of the peer in peers.json")
	cmd.Flags().String("net-addr", _config.NetAddr, "Address of the peer in peers.json")
}

func keygen(cmd *cobra.Command, args []string) error {
	privKeyFile := _config.Linker.Keyfile()

	if _, err := os.Stat(privKeyFile); err == nil {
		return fmt.Errorf("A key already lives under: %s", privKeyFile)
	}

	// peers.json must be usable before anything is written
	jsonPeerSet := peers.NewJSONPeerSet(_config.Linker.DataDir)

	peerSet, err := jsonPeerSet.PeerSet()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("Reading %s: %w", jsonPeerSet.Path(), err)
	}
	if peerSet == nil {
		peerSet = peers.NewPeerSet(nil)
	}
	if err := peerSet.Validate(); err != nil {
		return fmt.Errorf("Invalid %s: %w", jsonPeerSet.Path(), err)
	}

	key, err := keys.GenerateECDSAKey()
	if err != nil {
		return fmt.Errorf("Error generating ECDSA key: %w", err)
	}

	peer := peers.NewPeer(keys.PublicKeyHex(&key.PublicKey), _config.NetAddr, _config.Moniker)
	peerSet = peerSet.WithNewPeer(peer)

	if err := keys.NewSimpleKeyfile(privKeyFile).WriteKey(key); err != nil {
		return fmt.Errorf("Writing private key: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Your private key has been saved to: %s\n", privKeyFile)

	if err := jsonPeerSet.Write(peerSet.Peers); err != nil {
		return fmt.Errorf("Writing %s: %w", jsonPeerSet.Path(), err)
	}

	fmt.Fprintf(out, "Public key: %s\n", peer.PubKeyHex)
	fmt.Fprintf(out, "Creator id: %d\n", peer.ID())
	fmt.Fprintf(out, "Peers: %s (%d peers)\n", jsonPeerSet.Path(), peerSet.Len())

	return nil
}
