package state

import (
	"github.com/4b11b4/hexmint/cmd/hexmint/internal"
	"github.com/spf13/cobra"
)

var statusCMD = &cobra.Command{
	Use:   "status",
	Short: "Generator state information",
	Long:  `Show domain parameters and cycle progress of the persisted state.`,
	Args:  cobra.NoArgs,
	RunE:  statusFunc,
}

func statusFunc(cmd *cobra.Command, _ []string) error {
	log, err := internal.NewLogger()
	if err != nil {
		return err
	}

	s, err := internal.OpenStore(log)
	if err != nil {
		return err
	}

	defer s.Close()

	res, err := s.Status()
	if err != nil {
		return err
	}

	cmd.Printf("Code width (hex digits): %d\n", res.HexDigits)
	cmd.Printf("Domain size: %d\n", res.Domain)
	cmd.Printf("Sections: %d\n", res.Sections)
	cmd.Printf("Section size: %d\n", res.SectionSize)
	cmd.Printf("Emitted this cycle: %d\n", res.Emitted)
	cmd.Printf("Remaining this cycle: %d\n", res.Remaining)

	return nil
}
