package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vrapper/widget"
)

func newWidgetsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "widgets",
		Short: "List the GWT widgets found on the classpath",
		Long: `List every public, concrete class on the classpath that extends
com.google.gwt.user.client.ui.Widget.

Examples:
  vrapper widgets -c target/classes
  vrapper widgets -c lib/gwt-slider.jar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.classNames()
			if err != nil {
				return err
			}
			for _, w := range widget.Discover(s.types, names) {
				fmt.Fprintln(cmd.OutOrStdout(), w.ClassName())
			}
			return nil
		},
	}
}
