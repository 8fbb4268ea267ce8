package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vrapper/codegen"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var ch choices

	cmd := &cobra.Command{
		Use:   "generate <widget>",
		Short: "Generate the server side classes for a widget",
		Long: `Generate the component, connector, shared state and RPC interfaces for
a widget. Every method uses its default action unless --select picks
another one. Methods without a default action are left out.

With --out, one .java file per class is written below the directory,
laid out by package. Otherwise all classes are printed.

Examples:
  vrapper generate com.example.client.VSlider
  vrapper generate -o src/main/java com.example.client.VSlider \
      --select setCaption=client-rpc \
      --select addSlideHandler=event-handler \
      --param addSlideHandler=event-method/getValue/value`,
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
			if err := ch.apply(c); err != nil {
				return err
			}

			dir := opts.config.Output.Dir
			if dir == "" {
				src, err := c.BuildFullSource()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), src)
				return nil
			}

			classes, err := c.Generate()
			if err != nil {
				return err
			}
			for _, g := range classes {
				path, err := writeClass(dir, g)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}

	ch.addFlags(cmd)

	return cmd
}

// sourcePath returns where the source of g goes below dir.
func sourcePath(dir string, g *codegen.Generator) string {
	pkg := filepath.FromSlash(strings.ReplaceAll(g.PackageName(), ".", "/"))
	return filepath.Join(dir, pkg, g.ClassName()+".java")
}

func writeClass(dir string, g *codegen.Generator) (string, error) {
	path := sourcePath(dir, g)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", g.QualifiedName(), err)
	}
	code, _ := g.Render(false)
	if err := os.WriteFile(path, []byte(code+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
