package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/creator-studio/internal/observability"
	"github.com/jonathan/creator-studio/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate-profile <file.json>",
	Short: "Validate a style profile JSON document",
	Long:  `Check a style profile JSON document against the canonical schema without persisting anything. Useful before applying a bulk profile update.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateProfile,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidateProfile(_ *cobra.Command, args []string) error {
	err := schemas.ValidateStyleProfileFile(args[0])
	if err == nil {
		if verbose {
			observability.NewPrinter(os.Stdout).PrintNoFailures("PROFILE DOCUMENT IS VALID")
			return nil
		}
		fmt.Printf("%s is a valid style profile document\n", args[0])
		return nil
	}

	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		fmt.Printf("%s has %d violation(s):\n", args[0], len(verr.Errors))
		for _, fieldErr := range verr.Errors {
			fmt.Printf("  %s: %s\n", fieldErr.Field, fieldErr.Message)
		}
		return fmt.Errorf("document is not valid")
	}
	return err
}
