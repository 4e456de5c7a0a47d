package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/contact/internal/errors"
	"github.com/vango-dev/contact/pkg/contact"
)

func checkCmd() *cobra.Command {
	var (
		values  contact.Values
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a submission without sending it",
		Long: `Validate a contact submission with the same rules the form uses.

Values come from flags. When no value flag is given, a JSON object is read
from stdin instead. The command exits non-zero when any field fails.

Examples:
  contactd check --name "Jane Doe" --email jane@example.com --message "Hello there, world"
  echo '{"name":"","email":"x"}' | contactd check --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFlags := cmd.Flags().Changed("name") ||
				cmd.Flags().Changed("email") ||
				cmd.Flags().Changed("message")
			if !fromFlags {
				v, err := readValues(cmd.InOrStdin())
				if err != nil {
					return err
				}
				values = v
			}
			return runCheck(cmd.OutOrStdout(), values, jsonOut)
		},
	}

	cmd.Flags().StringVar(&values.Name, "name", "", "Sender name")
	cmd.Flags().StringVar(&values.Email, "email", "", "Sender email address")
	cmd.Flags().StringVar(&values.Message, "message", "", "Message body")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print field errors as JSON")

	return cmd
}

func readValues(r io.Reader) (contact.Values, error) {
	var v contact.Values
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, errors.New("C401").Wrap(err)
	}
	return v, nil
}

func runCheck(w io.Writer, v contact.Values, jsonOut bool) error {
	errs := contact.Validate(v)

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"ok": errs.OK(), "errors": errs}); err != nil {
			return err
		}
	} else if errs.OK() {
		success(w, "Submission is valid")
	} else {
		for _, f := range contact.Fields() {
			for _, msg := range errs.Field(string(f)) {
				fmt.Fprintf(w, "%s: %s\n", f, msg)
			}
		}
	}

	if !errs.OK() {
		return errors.New("C400").WithKey(fmt.Sprint(errs.Fields()))
	}
	return nil
}
