package main

import (
	"os"

	"github.com/4b11b4/hexmint/cmd/hexmint/internal"
	"github.com/4b11b4/hexmint/cmd/hexmint/internal/code"
	"github.com/4b11b4/hexmint/cmd/hexmint/internal/serve"
	"github.com/4b11b4/hexmint/cmd/hexmint/internal/state"
	"github.com/4b11b4/hexmint/cmd/internal/cmderr"
	"github.com/4b11b4/hexmint/misc"
	"github.com/spf13/cobra"
)

var vConfig string

var command = &cobra.Command{
	Use:   "hexmint",
	Short: "One-time hex code minter",
	Long: `Hexmint mints fixed-width hexadecimal codes in an apparently random order,
emitting every representable code exactly once before any code repeats.`,
	RunE:          entryPoint,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return internal.InitConfig(vConfig)
	},
}

func entryPoint(cmd *cobra.Command, _ []string) error {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("Hexmint"))

		return nil
	}

	return cmd.Usage()
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.Flags().Bool("version", false, "Application version")
	command.PersistentFlags().StringVarP(&vConfig, "config", "c", "", "Path to YAML configuration file")
	command.AddCommand(
		code.Root,
		state.Root,
		serve.Root,
	)
}

func main() {
	err := command.Execute()
	cmderr.ExitOnErr(err)
}
