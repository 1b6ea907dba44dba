package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/containers/validation"
	"github.com/zjrosen/hyperstore/internal/log"
	"github.com/zjrosen/hyperstore/internal/presentation"
)

func newContainersCmd(a *app) *cobra.Command {
	containersCmd := &cobra.Command{
		Use:     "containers",
		Aliases: []string{"ct"},
		Short:   "Create, inspect and update container records",
	}
	containersCmd.AddCommand(
		newEnsureCmd(a),
		newCreateCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newExistsCmd(a),
		newSetStatusCmd(a),
		newDeleteCmd(a),
		newWatchCmd(a),
	)
	return containersCmd
}

// writeCmd builds ensure and create, which differ only in the repository
// call and the result shape.
func writeCmd(a *app, use, short, long string, run func(cmd *cobra.Command, repo domain.ContainerRepository, name string, cfg domain.Config, template string) (any, error)) *cobra.Command {
	var (
		flags    configFlags
		validate bool
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := flags.build(cmd)
			if err != nil {
				return err
			}
			if validate {
				if err := validation.Container(name, flags.template, cfg); err != nil {
					return err
				}
			}

			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			result, err := run(cmd, repo, name, cfg, flags.template)
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).Format(result)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&validate, "validate", true, "check name, template and limits before storing (--validate=false skips)")
	return cmd
}

func newEnsureCmd(a *app) *cobra.Command {
	return writeCmd(a, "ensure NAME", "Return the named container, creating it if absent",
		`Return the container called NAME, creating it with status "stopped" if it
does not exist. Repeating the command returns the same record; template and
configuration flags are ignored when the container already exists.

Examples:
  hyperstore containers ensure web-1 --template alpine
  hyperstore containers ensure web-1 -t alpine --cpu 2 --memory 512MB --disk 5GB -e PORT=8080`,
		func(cmd *cobra.Command, repo domain.ContainerRepository, name string, cfg domain.Config, template string) (any, error) {
			c, created, err := repo.Ensure(cmd.Context(), name, template, cfg)
			if err != nil {
				return nil, err
			}
			return presentation.EnsureResultDTO{Created: created, Container: presentation.FromDomainContainer(c)}, nil
		})
}

func newCreateCmd(a *app) *cobra.Command {
	return writeCmd(a, "create NAME", "Create a container, failing if the name is taken",
		`Create a container called NAME. Unlike ensure, an existing container with
the same name is an error.

Examples:
  hyperstore containers create db-1 --template ubuntu-22-04 --rootfs /var/lib/rootfs/db-1`,
		func(cmd *cobra.Command, repo domain.ContainerRepository, name string, cfg domain.Config, template string) (any, error) {
			c, err := repo.Create(cmd.Context(), name, template, cfg)
			if err != nil {
				return nil, err
			}
			return presentation.FromDomainContainer(c), nil
		})
}

func newGetCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "get [NAME]",
		Short: "Show one container by name or id",
		Long: `Show the container called NAME, or the container with --id.

Examples:
  hyperstore containers get web-1
  hyperstore containers get --id 6f1c2e1a-0b7d-4c55-9a3e-1f2d3c4b5a69`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byID := cmd.Flags().Changed("id")
			if byID == (len(args) == 1) {
				return usageErrorf("give either NAME or --id")
			}

			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}

			var c *domain.Container
			if byID {
				parsed, parseErr := uuid.Parse(id)
				if parseErr != nil {
					return usageErrorf("--id %q: %v", id, parseErr)
				}
				c, err = repo.GetByID(cmd.Context(), parsed)
			} else {
				c, err = repo.GetByName(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).Format(presentation.FromDomainContainer(c))
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "container id (UUID)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every container, newest first",
		Long: `List every container as a JSON array, most recently created first.

Examples:
  hyperstore containers list
  hyperstore containers list | jq '.[].name'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			containers, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).Format(presentation.FromDomainContainers(containers))
		},
	}
}

func newExistsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists NAME",
		Short: "Report whether a container is stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			exists, err := repo.Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).Format(presentation.ExistsDTO{Name: args[0], Exists: exists})
		},
	}
}

func newSetStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status NAME STATUS",
		Short: "Set the lifecycle status of a container",
		Long: `Set the status of the container called NAME. STATUS is one of
stopped, starting, running, stopping, frozen or error.

Updating a container that does not exist changes nothing and reports
rows_affected 0.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			status, err := domain.ParseStatus(args[1])
			if err != nil {
				return usageErrorf("%v", err)
			}

			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			n, err := repo.UpdateStatus(cmd.Context(), name, status)
			if err != nil {
				return err
			}
			if n == 0 {
				log.Warn(log.CatCLI, "No container updated", "name", name)
				cmd.PrintErrf("warning: no container named %q\n", name)
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).Format(presentation.StatusChangeDTO{
				Name:         name,
				Status:       status.String(),
				RowsAffected: n,
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Permanently remove a container record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			n, err := repo.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if n == 0 {
				cmd.PrintErrf("warning: no container named %q\n", args[0])
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).Format(presentation.StatusChangeDTO{
				Name:         args[0],
				RowsAffected: n,
			})
		},
	}
}
