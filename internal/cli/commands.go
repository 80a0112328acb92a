package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmoiron/mctext/chat"
	"github.com/jmoiron/mctext/internal/app/mcformat"
	"github.com/jmoiron/mctext/markup"
)

func newCmdParse(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [text...]",
		Short: "Parse markup into styled spans",
		Example: `  mctext parse '<red>Hello <bold>world</bold></red>'
  mctext parse -o ansi -p name=Steve 'Hi <name>'
  echo '<gold>gilded' | mctext parse -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args)
			if err != nil {
				return err
			}
			doc, err := opts.parse(text)
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd, FormatJSON)
			if err != nil {
				return err
			}
			return r.RenderDocument(doc)
		},
	}
}

func newCmdSerialize(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serialize [file]",
		Short: "Write markup for a JSON or YAML document",
		Long: `Reads a document, a list of spans as printed by "mctext parse -o json"
or "-o yaml", from a file or stdin and writes it back as markup.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			doc, err := decodeDocument(data)
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd, FormatMarkup)
			if err != nil {
				return err
			}
			return r.RenderDocument(doc)
		},
	}
}

// decodeDocument reads a document from JSON or YAML.
func decodeDocument(data []byte) (markup.Document, error) {
	var doc markup.Document
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc); err == nil {
			return doc, nil
		}
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func newCmdStrip(opts *Options) *cobra.Command {
	var legacy bool
	cmd := &cobra.Command{
		Use:   "strip [text...]",
		Short: "Remove every tag and keep the literal text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args)
			if err != nil {
				return err
			}
			text = markup.Strip(markup.Substitute(text, opts.Placeholders))
			if legacy {
				text = mcformat.StripLegacy(text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&legacy, "legacy", false, "also remove legacy & and § codes")
	return cmd
}

func newCmdEscape(_ *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "escape [text...]",
		Short: "Escape tags so they display literally",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), markup.Escape(text))
			return nil
		},
	}
}

func newCmdLegacy(opts *Options) *cobra.Command {
	var from bool
	cmd := &cobra.Command{
		Use:   "legacy [text...]",
		Short: "Convert between markup and legacy § codes",
		Example: `  mctext legacy '<red>warning</red>'
  mctext legacy --from '&6gold &lbold' -o markup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args)
			if err != nil {
				return err
			}
			if from {
				r, err := opts.renderer(cmd, FormatMarkup)
				if err != nil {
					return err
				}
				return r.RenderDocument(mcformat.FromLegacy(text))
			}
			doc, err := opts.parse(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mcformat.ToLegacy(doc))
			return nil
		},
	}
	cmd.Flags().BoolVar(&from, "from", false, "read legacy & or § codes instead of markup")
	return cmd
}

func newCmdComponent(opts *Options) *cobra.Command {
	var (
		snbtOut bool
		decode  bool
	)
	cmd := &cobra.Command{
		Use:   "component [text...]",
		Short: "Convert markup to a JSON or SNBT text component",
		Example: `  mctext component '<green>ok</green>'
  mctext component --snbt '<click:run_command:/spawn>go</click>'
  mctext component --decode '{"text":"hi","color":"aqua"}' -o markup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args)
			if err != nil {
				return err
			}
			if decode {
				doc, err := chat.Unmarshal([]byte(text))
				if err != nil {
					return err
				}
				r, err := opts.renderer(cmd, FormatMarkup)
				if err != nil {
					return err
				}
				return r.RenderDocument(doc)
			}
			doc, err := opts.parse(text)
			if err != nil {
				return err
			}
			if snbtOut {
				s, err := chat.MarshalSNBT(doc)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			r, err := opts.renderer(cmd, FormatJSON)
			if err != nil {
				return err
			}
			return r.RenderValue(chat.Encode(doc))
		},
	}
	cmd.Flags().BoolVar(&snbtOut, "snbt", false, "write SNBT instead of JSON")
	cmd.Flags().BoolVar(&decode, "decode", false, "read a JSON component and write the document")
	return cmd
}

func newCmdVersion(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mctext %s\n", version)
			return nil
		},
	}
}
