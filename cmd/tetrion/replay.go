package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrion/internal/replay"
	"github.com/vovakirdan/tetrion/internal/tetrion"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded match",
	Long: `Run a recording made with 'tetrion play --record' through the
simulation without a terminal and print the final state.

With --verify the final snapshot hash must match the recorded one; the
command exits with status 1 otherwise.

Examples:
  tetrion replay ./last.yaml
  tetrion replay ./last.yaml --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Fail when the replay does not reproduce the recorded hash")
}

func runReplay(_ *cobra.Command, args []string) {
	rec, err := replay.Load(args[0])
	if err != nil {
		fail("%v", err)
	}

	var out replay.Outcome
	if flagVerify {
		out, err = replay.Verify(rec)
	} else {
		out, err = replay.Play(rec)
	}
	if err != nil && !errors.Is(err, replay.ErrMismatch) {
		fail("%v", err)
	}

	printOutcome(rec, out)

	if err != nil {
		fail("%v", err)
	}
	if flagVerify {
		fmt.Println("Replay verified.")
	}
}

func printOutcome(rec replay.Recording, out replay.Outcome) {
	snap := &out.Snapshot
	fmt.Printf("Player:   %s\n", rec.Player)
	fmt.Printf("Seed:     %d\n", rec.Seed)
	fmt.Printf("Variant:  %s\n", rec.Variant)
	fmt.Printf("Events:   %d\n", len(rec.Events))
	fmt.Printf("Ticks:    %d\n", out.Ticks)
	fmt.Printf("Frames:   %d\n", snap.Frame)
	fmt.Printf("Lines:    %d\n", snap.Lines)
	fmt.Printf("Pieces:   %d\n", snap.Pieces)
	if snap.State == tetrion.StateOutro {
		fmt.Printf("End:      %s\n", snap.End)
	}
	fmt.Printf("Hash:     %d\n", out.Hash())
}
