package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vrapper/widget"
)

func newPreviewCmd(opts *globalOptions) *cobra.Command {
	var (
		ch     choices
		action string
		full   bool
	)

	cmd := &cobra.Command{
		Use:   "preview <widget> [method]",
		Short: "Show the code one action contributes",
		Long: `Show the code the selected action of a method contributes to each
generated class. Without a method only the connector is shown.

The method is given by name, or by name and descriptor when the name is
overloaded.

Examples:
  vrapper preview com.example.client.VSlider setColor
  vrapper preview --action client-rpc com.example.client.VSlider setColor
  vrapper preview --full com.example.client.VSlider 'setRange(II)V'`,
		Args: cobra.RangeArgs(1, 2),
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
			if err := ch.apply(c); err != nil {
				return err
			}

			var a widget.Action
			if len(args) == 2 {
				if a, err = previewAction(c, args[1], action); err != nil {
					return err
				}
			}
			src, err := c.Preview(a, !full)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), src)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "action kind to preview instead of the selected one")
	cmd.Flags().BoolVar(&full, "full", false, "render complete classes")
	ch.addFlags(cmd)

	return cmd
}

func previewAction(c *widget.Configuration, method, kind string) (widget.Action, error) {
	mc, err := c.Method(method)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		if a := mc.Selected(); a != nil {
			return a, nil
		}
		return nil, fmt.Errorf("%s has no selected action, use --action", mc.Method().SourceString())
	}
	k, err := widget.ParseActionKind(kind)
	if err != nil {
		return nil, err
	}
	a := mc.Action(k)
	if a == nil {
		return nil, fmt.Errorf("%s has no %s action", mc.Method().SourceString(), k)
	}
	return a, nil
}
