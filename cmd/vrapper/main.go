package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/vrapper/config"
)

type globalOptions struct {
	configPath string
	classpath  []string
	verbose    int
	out        string

	config *config.Config
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "vrapper",
		Short: "Wrap GWT widgets as Vaadin components",
		Long: `vrapper reads compiled widget classes and generates the component,
connector, shared state and RPC interfaces that expose them on the server.

Classes are read from the classpath given with -c or in vrapper.toml.
Entries are directories, jars, or a directory ending in "*" for all jars
in it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default vrapper.toml)")
	flags.StringSliceVarP(&opts.classpath, "classpath", "c", nil, "classpath entries, replacing the configured ones")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVarP(&opts.out, "out", "o", "", "directory for generated sources (default stdout)")

	rootCmd.AddCommand(newWidgetsCmd(opts))
	rootCmd.AddCommand(newMethodsCmd(opts))
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newPreviewCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the configuration file and lets flags override it.
func (o *globalOptions) load(cmd *cobra.Command) error {
	c, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("classpath") {
		c.Classpath = o.classpath
		if c.Dir, err = os.Getwd(); err != nil {
			return err
		}
	}
	if flags.Changed("verbose") {
		c.Verbosity = o.verbose
	}
	if flags.Changed("out") {
		c.Output.Dir = o.out
	}
	o.config = c

	var logFile *string
	if c.LogFile != "" {
		logFile = &c.LogFile
	}
	commonlog.Configure(c.Verbosity, logFile)
	return nil
}
