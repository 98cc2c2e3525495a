package code

import (
	"github.com/4b11b4/hexmint/cmd/hexmint/internal"
	"github.com/spf13/cobra"
)

var vCount int

var batchCMD = &cobra.Command{
	Use:   "batch",
	Short: "Mint several codes at once",
	Long: `Mint and print several codes in a single state transaction. Much faster
than repeated 'next' calls since the state file is loaded and written once.`,
	Args: cobra.NoArgs,
	RunE: batchFunc,
}

func init() {
	batchCMD.Flags().IntVar(&vCount, "count", 10, "Number of codes to mint")
}

func batchFunc(cmd *cobra.Command, _ []string) error {
	log, err := internal.NewLogger()
	if err != nil {
		return err
	}

	s, err := internal.OpenStore(log)
	if err != nil {
		return err
	}

	defer s.Close()

	codes, err := s.MintBatch(vCount)
	if err != nil {
		return err
	}

	for _, c := range codes {
		cmd.Println(c)
	}

	return nil
}
