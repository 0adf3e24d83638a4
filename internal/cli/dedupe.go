package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clinchpad/clinchpad-go/pkg/clinchpad"
)

var dedupePrefix string

var dedupeCmd = &cobra.Command{
	Use:   "dedupe-notes <lead-id>",
	Short: "Collapse duplicate value notes on a lead",
	Long: `Find every note on the lead whose content starts with --prefix,
delete all but the newest, and print the value encoded after the
prefix. Notes are used as an ad-hoc value store; retried writes can
leave duplicates behind, and this cleans them up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()

		lead, err := c.LeadByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		match := func(content string) (string, bool) {
			return strings.CutPrefix(content, dedupePrefix)
		}
		value, ok, err := clinchpad.FindNote(cmd.Context(), c, *lead, match, clinchpad.FindKeepLast)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("no note matching prefix %q\n", dedupePrefix)
			return nil
		}
		fmt.Println(value)
		return nil
	},
}

func init() {
	dedupeCmd.Flags().StringVar(&dedupePrefix, "prefix", "", "Content prefix identifying the value notes")
	_ = dedupeCmd.MarkFlagRequired("prefix")
	rootCmd.AddCommand(dedupeCmd)
}
