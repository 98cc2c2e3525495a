package code

import (
	"github.com/spf13/cobra"
)

// Root contains `code` command definition.
var Root = &cobra.Command{
	Use:   "code",
	Short: "Minting one-time codes",
}

func init() {
	Root.AddCommand(
		nextCMD,
		batchCMD,
	)
}
