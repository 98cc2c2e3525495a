package state

import (
	"github.com/spf13/cobra"
)

// Root contains `state` command definition.
var Root = &cobra.Command{
	Use:   "state",
	Short: "Operations with the persisted generator state",
}

func init() {
	Root.AddCommand(
		statusCMD,
		resetCMD,
	)
}
