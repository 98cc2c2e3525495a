package code

import (
	"github.com/4b11b4/hexmint/cmd/hexmint/internal"
	"github.com/spf13/cobra"
)

var nextCMD = &cobra.Command{
	Use:   "next",
	Short: "Mint a single code",
	Long: `Mint and print one code. Every code of the configured width is emitted
exactly once before any code repeats; state between invocations is kept in
the state file.`,
	Args: cobra.NoArgs,
	RunE: nextFunc,
}

func nextFunc(cmd *cobra.Command, _ []string) error {
	log, err := internal.NewLogger()
	if err != nil {
		return err
	}

	s, err := internal.OpenStore(log)
	if err != nil {
		return err
	}

	defer s.Close()

	code, err := s.Mint()
	if err != nil {
		return err
	}

	cmd.Println(code)

	return nil
}
