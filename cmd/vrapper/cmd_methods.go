package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vrapper/widget"
)

func newMethodsCmd(opts *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "methods <widget>",
		Short: "Show the actions available for each widget method",
		Long: `Show every public method of a widget with the actions that can expose it,
best first. The action marked with "*" is selected by default.

Examples:
  vrapper methods com.example.client.VSlider
  vrapper methods --all com.example.client.VSlider`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := s.configuration(args[0])
			if err != nil {
				return err
			}
			printMethods(cmd.OutOrStdout(), c, all)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "also show impossible actions")

	return cmd
}

func printMethods(w io.Writer, c *widget.Configuration, all bool) {
	fmt.Fprintf(w, "%s\n", c.Widget().ClassName())
	fmt.Fprintf(w, "  component: %s\n", c.ComponentConfig().QualifiedName())
	fmt.Fprintf(w, "  connector: %s\n", c.ConnectorConfig().QualifiedName())
	fmt.Fprintf(w, "  state:     %s\n", c.StateConfig().QualifiedName())

	for _, mc := range c.Methods() {
		fmt.Fprintf(w, "\n%s\n", mc.Method().SourceString())
		for _, a := range mc.Actions() {
			mark := " "
			if a == mc.Selected() {
				mark = "*"
			}
			printAction(w, mark, a)
		}
		if all {
			for _, a := range mc.ImpossibleActions() {
				printAction(w, "-", a)
			}
		}
	}

	if skipped := c.Skipped(); len(skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d methods:\n", len(skipped))
		for _, sk := range skipped {
			fmt.Fprintf(w, "  %s: %v\n", sk.Method.SourceString(), sk.Err)
		}
	}
}

func printAction(w io.Writer, mark string, a widget.Action) {
	v := a.Verdict()
	fmt.Fprintf(w, "  %s %-14s %-12s %s", mark, a.Kind(), v.Status, a.Label())
	if v.Comment != "" {
		fmt.Fprintf(w, " (%s)", v.Comment)
	}
	fmt.Fprintln(w)
}
