package cli

import (
	"fmt"
	"io"

	"content-provider/app"
	"content-provider/models"
	"content-provider/provider"

	"github.com/spf13/cobra"
)

// NewInsertCommand creates the insert command.
func NewInsertCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "insert <collection-address>",
		Short:   "Insert a record and print its address",
		Example: `  content-provider insert content://com.example.android.contentprovidersample.provider/cheeses --name Brie`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app.App, out *OutputFormatter) error {
				address, err := a.Provider.Insert(args[0], models.Cheese{Name: name})
				if err != nil {
					return err
				}

				id, err := provider.ParseID(address)
				if err != nil {
					return err
				}

				return out.Success(map[string]any{"address": address, "id": id}, func(w io.Writer) {
					fmt.Fprintln(w, address)
				})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "cheese name")
	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "update <item-address|id>",
		Short: "Rename the record at an item address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app.App, out *OutputFormatter) error {
				count, err := a.Provider.Update(addressArg(a, args[0]), models.Cheese{Name: name})
				if err != nil {
					return err
				}
				return writeCount(out, count, "affected")
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new cheese name")
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item-address|id>",
		Short: "Delete the record at an item address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app.App, out *OutputFormatter) error {
				count, err := a.Provider.Delete(addressArg(a, args[0]))
				if err != nil {
					return err
				}
				return writeCount(out, count, "affected")
			})
		},
	}
}

// BulkInsertOptions holds flags for the bulk-insert command.
type BulkInsertOptions struct {
	*RootOptions
	Names []string
	File  string
}

// NewBulkInsertCommand creates the bulk-insert command.
func NewBulkInsertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BulkInsertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bulk-insert <collection-address>",
		Short: "Insert many records in one call",
		Long: `Insert many records in one call. Names come from repeated --name flags
and/or a YAML file of the form:

  cheeses:
    - name: Brie
    - name: Gouda`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cheeses, err := opts.cheeses()
			if err != nil {
				return err
			}

			return withApp(rootOpts, cmd, func(a *app.App, out *OutputFormatter) error {
				n, err := a.Provider.BulkInsert(args[0], cheeses)
				if err != nil {
					return err
				}
				return writeCount(out, int64(n), "inserted")
			})
		},
	}

	cmd.Flags().StringArrayVar(&opts.Names, "name", nil, "cheese name (repeatable)")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML file of cheeses")
	return cmd
}

func (o *BulkInsertOptions) cheeses() ([]models.Cheese, error) {
	var cheeses []models.Cheese
	if o.File != "" {
		fromFile, err := loadBulkFile(o.File)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read bulk file", err)
		}
		cheeses = append(cheeses, fromFile...)
	}
	for _, name := range o.Names {
		cheeses = append(cheeses, models.Cheese{Name: name})
	}
	if len(cheeses) == 0 {
		return nil, NewExitError(ExitCommandError, "nothing to insert: pass --name or --file")
	}
	return cheeses, nil
}

func writeCount(out *OutputFormatter, count int64, verb string) error {
	return out.Success(map[string]int64{"count": count}, func(w io.Writer) {
		fmt.Fprintf(w, "%d rows %s\n", count, verb)
	})
}
