package cli

import (
	"fmt"
	"io"
	"os"

	"content-provider/app"
	"content-provider/models"
	"content-provider/provider"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// batchFile is the YAML layout accepted by the batch command
type batchFile struct {
	Operations []batchEntry `yaml:"operations"`
}

type batchEntry struct {
	Op      string        `yaml:"op"`
	Address string        `yaml:"address"`
	Values  models.Values `yaml:"values"`
}

// bulkFile is the YAML layout accepted by bulk-insert --file
type bulkFile struct {
	Cheeses []models.Values `yaml:"cheeses"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "batch --file <operations.yaml>",
		Short: "Apply inserts, updates and deletes atomically",
		Long: `Apply a list of operations in order inside one transaction. If any
operation fails, none of them are applied.

  operations:
    - op: insert
      address: content://com.example.android.contentprovidersample.provider/cheeses
      values: {name: Brie}
    - op: update
      address: content://com.example.android.contentprovidersample.provider/cheeses/1
      values: {name: Brie de Meaux}
    - op: delete
      address: content://com.example.android.contentprovidersample.provider/cheeses/2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return NewExitError(ExitCommandError, "--file is required")
			}
			ops, err := loadBatchFile(file)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read batch file", err)
			}

			return withApp(rootOpts, cmd, func(a *app.App, out *OutputFormatter) error {
				results, err := a.Provider.ApplyBatch(ops)
				if err != nil {
					return err
				}

				return out.Success(results, func(w io.Writer) {
					for i, result := range results {
						if ops[i].Kind == provider.OpInsert {
							fmt.Fprintf(w, "%d\t%s\t%s\n", i, ops[i].Kind, result.Address)
						} else {
							fmt.Fprintf(w, "%d\t%s\t%d rows affected\n", i, ops[i].Kind, result.Count)
						}
					}
				})
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file of operations")
	return cmd
}

func loadBatchFile(path string) ([]provider.Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed batchFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	ops := make([]provider.Operation, 0, len(parsed.Operations))
	for i, entry := range parsed.Operations {
		cheese, err := models.CheeseFromValues(entry.Values)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		ops = append(ops, provider.Operation{
			Kind:    provider.OperationKind(entry.Op),
			Address: entry.Address,
			Values:  cheese,
		})
	}
	return ops, nil
}

func loadBulkFile(path string) ([]models.Cheese, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed bulkFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cheeses := make([]models.Cheese, 0, len(parsed.Cheeses))
	for i, values := range parsed.Cheeses {
		cheese, err := models.CheeseFromValues(values)
		if err != nil {
			return nil, fmt.Errorf("cheese %d: %w", i, err)
		}
		cheeses = append(cheeses, cheese)
	}
	return cheeses, nil
}
