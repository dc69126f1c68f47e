package supacodedemo

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/supacode-demo/internal/simulator"
)

func newOperationsCommand(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   operationsCommandUse,
		Short: operationsCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperationsCommand(cmd)
		},
	}
}

func runOperationsCommand(command *cobra.Command) error {
	outputWriter := command.OutOrStdout()
	for _, operation := range simulator.Operations() {
		if _, writeErr := fmt.Fprintf(outputWriter, operationListingLineFormat, operation.String(), operation.Label()); writeErr != nil {
			return fmt.Errorf(writeOperationListingErrorFormat, writeErr)
		}
	}
	return nil
}
