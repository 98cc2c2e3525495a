package state

import (
	"errors"

	"github.com/4b11b4/hexmint/cmd/hexmint/internal"
	"github.com/spf13/cobra"
)

var vYes bool

var resetCMD = &cobra.Command{
	Use:   "reset",
	Short: "Discard the persisted generator state",
	Long: `Replace the persisted state with a fresh one. All cycle progress is lost:
codes emitted in the interrupted cycle will be emitted again. This is the
recovery path for a state file the application refuses to load.`,
	Args: cobra.NoArgs,
	RunE: resetFunc,
}

func init() {
	resetCMD.Flags().BoolVar(&vYes, "yes", false, "Confirm the reset")
}

func resetFunc(cmd *cobra.Command, _ []string) error {
	if !vYes {
		return errors.New("reset discards cycle progress, confirm with --yes")
	}

	log, err := internal.NewLogger()
	if err != nil {
		return err
	}

	// Reset must work even when Init rejects the stored blob, so the store
	// is opened without initialization here.
	s, err := internal.OpenStoreNoInit(log)
	if err != nil {
		return err
	}

	defer s.Close()

	if err := s.Reset(); err != nil {
		return err
	}

	cmd.Println("state has been reset")

	return nil
}
