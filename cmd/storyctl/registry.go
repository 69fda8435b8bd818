// cmd/storyctl/registry.go
package main

import (
	"fmt"
	"text/tabwriter"

	"story-workers/internal/common/config"
	"story-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func (c *cli) registryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and maintain the activity registry",
	}
	cmd.PersistentFlags().String("path", config.DefaultRegistryPath, "path to the activity registry")
	_ = c.v.BindPFlag("registry.path", cmd.PersistentFlags().Lookup("path"))

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(c.v.GetString("registry.path"))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TASK TYPE\tVERSION\tSTATUS\tTIMEOUT\tRETRIES")
			for _, a := range reg.Activities {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", a.TaskType, a.Version, a.ImplementationStatus, a.Timeout, a.Retries)
			}
			return w.Flush()
		},
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate the registry file",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(c.v.GetString("registry.path"))
			if err != nil {
				return err
			}
			if err := reg.Lint(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.out, "Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return err
		},
	}

	update := &cobra.Command{
		Use:     "update",
		Short:   "Update a field of an activity",
		Example: "  storyctl registry update --id render-user-story --field retries --value 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.v.GetString("registry.path")
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("id")
			field, _ := cmd.Flags().GetString("field")
			value, _ := cmd.Flags().GetString("value")
			if err := reg.Update(id, field, value); err != nil {
				return err
			}
			if err := reg.Save(path); err != nil {
				return err
			}
			c.log.Info("registry updated", map[string]interface{}{"id": id, "field": field, "path": path})
			return nil
		},
	}
	update.Flags().String("id", "", "activity id")
	update.Flags().String("field", "", "field to update: status, version, displayName, description, category, timeout, retries")
	update.Flags().String("value", "", "new value")
	_ = update.MarkFlagRequired("id")
	_ = update.MarkFlagRequired("field")

	cmd.AddCommand(list, validate, update)
	return cmd
}
