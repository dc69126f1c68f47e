package supacodedemo

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/temirov/supacode-demo/internal/listings"
)

type listingsCommandOptions struct {
	raw   bool
	style string
	width int
}

func newListingsCommand(app *application) *cobra.Command {
	options := &listingsCommandOptions{}

	command := &cobra.Command{
		Use:   listingsCommandUse,
		Short: listingsCommandShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runListingsIndex(cmd)
			}
			return runListingCommand(cmd, *options, args[0])
		},
	}

	command.Flags().BoolVar(&options.raw, rawFlagName, false, rawFlagUsage)
	command.Flags().StringVar(&options.style, styleFlagName, listings.StyleAuto, styleFlagUsage)
	command.Flags().IntVar(&options.width, widthFlagName, defaultRenderWidth, widthFlagUsage)
	return command
}

func runListingsIndex(command *cobra.Command) error {
	outputWriter := command.OutOrStdout()
	for _, listing := range listings.All() {
		if _, writeErr := fmt.Fprintf(outputWriter, listingIndexLineFormat, listing.Name, listing.Language, listing.Title); writeErr != nil {
			return fmt.Errorf(writeListingIndexErrorFormat, writeErr)
		}
	}
	return nil
}

func runListingCommand(command *cobra.Command, options listingsCommandOptions, name string) error {
	listing, findErr := listings.Find(name)
	if findErr != nil {
		return findErr
	}
	if options.raw {
		_, writeErr := io.WriteString(command.OutOrStdout(), listing.Code+"\n")
		return writeErr
	}
	rendered, renderErr := listings.Render(listing, options.style, options.width)
	if renderErr != nil {
		return renderErr
	}
	_, writeErr := io.WriteString(command.OutOrStdout(), rendered)
	return writeErr
}
