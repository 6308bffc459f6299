package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mosaicnetworks/eventlinker/src/peers"
	"github.com/mosaicnetworks/eventlinker/src/simulation"
	"github.com/spf13/cobra"
	"github.com/ugorji/go/codec"
)

//NewSimulateCmd returns the command that runs a simulation
func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "simulate",
		Short:   "Link a synthetic hashgraph and report",
		PreRunE: loadConfig,
		RunE:    runSimulate,
	}
	AddSimulateFlags(cmd)
	return cmd
}

//AddSimulateFlags adds flags to the simulate command
func AddSimulateFlags(cmd *cobra.Command) {
	cmd.Flags().Int("peers", _config.Simulation.Peers, "Number of creators")
	cmd.Flags().Int("events", _config.Simulation.Events, "Number of events to generate")
	cmd.Flags().Int("events-per-round", _config.Simulation.EventsPerRound, "Events per peer per birth round")
	cmd.Flags().Uint64("rounds-kept", _config.Simulation.RoundsKept, "Indicator values kept non-ancient")
	cmd.Flags().Int("window-every", _config.Simulation.WindowEvery, "Events between window updates")
	cmd.Flags().Float64("forge-rate", _config.Simulation.ForgeRate, "Probability of a forged parent descriptor")
	cmd.Flags().Float64("drop-rate", _config.Simulation.DropRate, "Probability of an undelivered event")
	cmd.Flags().Int("shuffle", _config.Simulation.Shuffle, "Size of the delivery reordering buffer")
	cmd.Flags().Int64("seed", _config.Simulation.Seed, "Random seed")
	cmd.Flags().Bool("use-peers", _config.UsePeers, "Take creators from peers.json in datadir")
	cmd.Flags().Bool("json", _config.JSON, "Print the report as JSON")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	var peerSet *peers.PeerSet

	if _config.UsePeers {
		jsonPeerSet := peers.NewJSONPeerSet(_config.Linker.DataDir)

		ps, err := jsonPeerSet.PeerSet()
		if err != nil {
			return fmt.Errorf("reading %s: %w", jsonPeerSet.Path(), err)
		}
		if ps == nil {
			return fmt.Errorf("%s is empty", jsonPeerSet.Path())
		}
		peerSet = ps
	}

	sim, err := simulation.New(&_config.Simulation, &_config.Linker, peerSet)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	if _config.JSON {
		jh := new(codec.JsonHandle)
		jh.Indent = 2
		return codec.NewEncoder(cmd.OutOrStdout(), jh).Encode(report)
	}

	report.Print(cmd.OutOrStdout())

	return nil
}
