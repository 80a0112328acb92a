// Package cli implements the mctext command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmoiron/mctext/internal/config"
	"github.com/jmoiron/mctext/markup"
)

// Options holds the global flags and the settings loaded from them.
type Options struct {
	ConfigFile   string
	Output       string
	NoColor      bool
	Verbose      int
	Placeholders map[string]string

	Config *config.Config
}

// NewCmdRoot creates the root command.
func NewCmdRoot(version string) *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "mctext",
		Short: "Parse, convert and preview Minecraft chat markup",
		Long: `mctext works with the tag markup used for Minecraft chat text:

  <red>Hello <bold>world</bold></red>
  <click:run_command:/spawn>teleport</click>
  <hover:show_text:"<gold>tooltip">hover me</hover>

Text can be given as arguments or on stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVarP(&opts.ConfigFile, "config", "c", "", "config file (yaml)")
	fs.StringVarP(&opts.Output, "output", "o", "", "output format: json, yaml, markup, plain, ansi")
	fs.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	fs.CountVarP(&opts.Verbose, "verbose", "v", "increase verbosity; repeat for more detail")
	fs.Bool("strict", false, "reject unknown and unclosed tags")
	fs.Int("max-depth", 0, "maximum hover nesting (negative for unlimited)")
	addPlaceholderFlag(fs, opts)

	cmd.SetVersionTemplate("mctext {{.Version}}\n")

	cmd.AddCommand(newCmdParse(opts))
	cmd.AddCommand(newCmdSerialize(opts))
	cmd.AddCommand(newCmdStrip(opts))
	cmd.AddCommand(newCmdEscape(opts))
	cmd.AddCommand(newCmdLegacy(opts))
	cmd.AddCommand(newCmdComponent(opts))
	cmd.AddCommand(newCmdServe(opts))
	cmd.AddCommand(newCmdVersion(version))

	return cmd
}

func addPlaceholderFlag(fs *pflag.FlagSet, opts *Options) {
	fs.StringToStringVarP(&opts.Placeholders, "placeholder", "p", nil,
		"replace <key> with value before parsing (key=value, repeatable)")
}

// flagKeys maps flags to the config keys they override.
var flagKeys = map[string]string{
	"strict":    "parse.strict",
	"max-depth": "parse.max_depth",
	"verbose":   "log.verbose",
	"addr":      "server.addr",
}

// load reads the configuration, applies flag overrides and installs the
// default logger.
func (o *Options) load(cmd *cobra.Command) error {
	v, err := config.New(o.ConfigFile)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	lvl, err := c.Log.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})))
	slog.Debug("loaded config", "file", v.ConfigFileUsed(), "strict", c.Parse.Strict, "max_depth", c.Parse.MaxDepth)

	o.Config = c
	return nil
}

func (o *Options) parser() *markup.Parser {
	if o.Config == nil {
		return markup.NewParser()
	}
	return o.Config.Parser()
}

// parse substitutes the placeholder flags into text and parses it.
func (o *Options) parse(text string) (markup.Document, error) {
	return o.parser().Parse(markup.Substitute(text, o.Placeholders))
}

func (o *Options) renderer(cmd *cobra.Command, def Format) (*Renderer, error) {
	f := Format(o.Output)
	if f == "" {
		f = def
	}
	if !f.Valid() {
		return nil, fmt.Errorf("unknown output format %q", o.Output)
	}
	r := NewRenderer(f, o.NoColor)
	r.SetWriter(cmd.OutOrStdout())
	return r, nil
}

// input returns the arguments joined by spaces, or all of stdin when there
// are none. A single trailing newline from stdin is dropped.
func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if st, err := f.Stat(); err == nil && st.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no input: pass text as arguments or on stdin")
		}
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	s := strings.TrimSuffix(string(b), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
