package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/hyperstore/internal/containers/validation"
	"github.com/zjrosen/hyperstore/internal/presentation"
)

func newValidateCmd(_ *app) *cobra.Command {
	var flags configFlags
	cmd := &cobra.Command{
		Use:   "validate NAME",
		Short: "Check a container definition without storing it",
		Long: `Run the validation rules for a container name, template and resource
limits and print every failing field. Nothing is read from or written to the
database. Exits with status 2 when the definition is invalid.

Examples:
  hyperstore validate web-1 --template alpine --memory 512MB
  hyperstore validate Web_1 --template Alpine --cpu 0 | jq '.errors[].field'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.build(cmd)
			if err != nil {
				return err
			}
			verr := validation.Container(args[0], flags.template, cfg)
			if err := presentation.NewFormatter(cmd.OutOrStdout()).Format(presentation.FromValidationError(verr)); err != nil {
				return err
			}
			return verr
		},
	}
	flags.register(cmd)
	return cmd
}
