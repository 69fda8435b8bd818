// cmd/storyctl/root.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"story-workers/internal/common/logger"
	"story-workers/internal/story"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// cli carries the state shared by the storyctl commands.
type cli struct {
	in  io.Reader
	out io.Writer
	v   *viper.Viper
	log logger.Logger
	gen *story.Generator
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{
		in:  in,
		out: out,
		v:   viper.New(),
		gen: story.NewGenerator(),
	}

	root := &cobra.Command{
		Use:   "storyctl",
		Short: "Generate user stories from analyst notes",
		Long: `storyctl turns free-text analyst notes (Portuguese) into structured user
stories: requester, narrative, acceptance criteria, tasks, dependencies and risks.

Notes are read from --file, from the arguments, or from stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.log = logger.NewZapAdapter(logger.NewWithOutput(c.v.GetString("log_level"), "console", "stderr"))
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	_ = c.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	c.v.SetEnvPrefix("STORYCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(c.generateCmd(), c.analyzeCmd(), c.renderCmd(), c.registryCmd())
	return root
}

func (c *cli) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [notes...]",
		Short: "Generate a user story from notes",
		Example: `  storyctl generate --file notas.txt --format markdown
  echo "Corrigir erro no relatório FEHIDRO" | storyctl generate --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readNotes(c.v.GetString("generate.file"), args)
			if err != nil {
				return err
			}

			doc, analysis := c.gen.Explain(note)
			c.log.Info("story generated", map[string]interface{}{
				"storyId":     story.StoryID(note),
				"requestType": string(analysis.Context.RequestType),
				"system":      analysis.System,
			})

			format := c.v.GetString("generate.format")
			switch strings.ToLower(format) {
			case "json", "yaml", "yml":
				payload := struct {
					StoryID  string              `json:"storyId" yaml:"storyId"`
					Story    story.StoryDocument `json:"story" yaml:"story"`
					Analysis *story.Analysis     `json:"analysis,omitempty" yaml:"analysis,omitempty"`
				}{StoryID: story.StoryID(note), Story: doc}
				if c.v.GetBool("generate.analysis") {
					payload.Analysis = &analysis
				}
				return c.encode(format, payload)
			default:
				return c.render(doc, format)
			}
		},
	}

	cmd.Flags().StringP("file", "f", "", "read notes from file")
	cmd.Flags().StringP("format", "o", "markdown", "output format: json, yaml, markdown, text")
	cmd.Flags().Bool("analysis", false, "include the analysis in json/yaml output")
	_ = c.v.BindPFlag("generate.file", cmd.Flags().Lookup("file"))
	_ = c.v.BindPFlag("generate.format", cmd.Flags().Lookup("format"))
	_ = c.v.BindPFlag("generate.analysis", cmd.Flags().Lookup("analysis"))
	return cmd
}

func (c *cli) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [notes...]",
		Short: "Show the signals extracted from notes",
		Long:  "Print the request context, identified system, problem and solution for the notes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readNotes(c.v.GetString("analyze.file"), args)
			if err != nil {
				return err
			}
			_, analysis := c.gen.Explain(note)
			return c.encode(c.v.GetString("analyze.format"), analysis)
		},
	}

	cmd.Flags().StringP("file", "f", "", "read notes from file")
	cmd.Flags().StringP("format", "o", "json", "output format: json, yaml")
	_ = c.v.BindPFlag("analyze.file", cmd.Flags().Lookup("file"))
	_ = c.v.BindPFlag("analyze.format", cmd.Flags().Lookup("format"))
	return cmd
}

func (c *cli) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a story document from a JSON or YAML file",
		Long: `Render a story produced by "generate --format json|yaml". The file may hold
either the bare document or the generate output with a "story" key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.v.GetString("render.file")
			if path == "" {
				return fmt.Errorf("--file is required")
			}
			doc, err := loadStory(path)
			if err != nil {
				return err
			}
			return c.render(doc, c.v.GetString("render.format"))
		},
	}

	cmd.Flags().StringP("file", "f", "", "story document file (.json, .yaml)")
	cmd.Flags().StringP("format", "o", "markdown", "output format: markdown, text")
	_ = c.v.BindPFlag("render.file", cmd.Flags().Lookup("file"))
	_ = c.v.BindPFlag("render.format", cmd.Flags().Lookup("format"))
	return cmd
}

// readNotes prefers path, then args, then stdin.
func (c *cli) readNotes(path string, args []string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read notes: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(c.in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func (c *cli) render(doc story.StoryDocument, formatName string) error {
	format, err := story.ParseFormat(formatName)
	if err != nil {
		return err
	}
	text, err := story.Render(doc, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, text)
	return err
}

func (c *cli) encode(format string, v interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(c.out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(c.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("%w: %q", story.ErrUnsupportedFormat, format)
}

func loadStory(path string) (story.StoryDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return story.StoryDocument{}, fmt.Errorf("read story: %w", err)
	}

	unmarshal := json.Unmarshal
	if lower := strings.ToLower(path); strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		unmarshal = yaml.Unmarshal
	}

	var envelope struct {
		Story *story.StoryDocument `json:"story" yaml:"story"`
	}
	if err := unmarshal(data, &envelope); err != nil {
		return story.StoryDocument{}, fmt.Errorf("parse story: %w", err)
	}
	if envelope.Story != nil {
		return *envelope.Story, nil
	}

	var doc story.StoryDocument
	if err := unmarshal(data, &doc); err != nil {
		return story.StoryDocument{}, fmt.Errorf("parse story: %w", err)
	}
	return doc, nil
}
