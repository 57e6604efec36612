package cli

import (
	"fmt"
	"io"

	"content-provider/app"

	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <address|id>",
		Short: "List the table or show one record",
		Example: `  content-provider query content://com.example.android.contentprovidersample.provider/cheeses
  content-provider query content://com.example.android.contentprovidersample.provider/cheeses/3
  content-provider query 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app.App, out *OutputFormatter) error {
				cheeses, err := a.Provider.Query(addressArg(a, args[0]))
				if err != nil {
					return err
				}

				return out.Success(cheeses, func(w io.Writer) {
					for _, cheese := range cheeses {
						fmt.Fprintf(w, "%d\t%s\n", cheese.ID, cheese.Name)
					}
					fmt.Fprintf(w, "(%d rows)\n", len(cheeses))
				})
			})
		},
	}
}

// NewTypeCommand creates the type command.
func NewTypeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "type <address|id>",
		Short: "Print the content type of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app.App, out *OutputFormatter) error {
				contentType, err := a.Provider.Type(addressArg(a, args[0]))
				if err != nil {
					return err
				}

				return out.Success(map[string]string{"type": contentType}, func(w io.Writer) {
					fmt.Fprintln(w, contentType)
				})
			})
		},
	}
}
