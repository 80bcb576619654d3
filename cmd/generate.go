package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tohu/internal/logger"
	"github.com/abhisek/tohu/internal/pack"
	"github.com/abhisek/tohu/internal/pdf"
	"github.com/abhisek/tohu/internal/ui/wizard"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build one pack and write its handout to disk",
	Example: `  tohu generate --theme Birds
  tohu generate --theme "Kai time" --keywords "apple, bread" --json kai.json
  tohu generate --subject math --activity name_the_number --theme kiwi
  tohu generate --interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := inputFromFlags(cmd)
		interactive, _ := cmd.Flags().GetBool("interactive")
		if !interactive {
			if err := in.Normalize().Validate(); err != nil {
				return err
			}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// The wizard owns the terminal, so it runs without log output.
		log := logger.Nop()
		if !interactive {
			if log, err = logger.New(cfg.Log.Mode); err != nil {
				return err
			}
			defer log.Sync()
		}

		p, err := newPipeline(cmd, cfg, log)
		if err != nil {
			return err
		}

		var built *pack.Pack
		if interactive {
			built, err = wizard.Run(cmd.Context(), in.Normalize(), p.packs.Generate)
			if errors.Is(err, wizard.ErrCancelled) {
				return nil
			}
		} else {
			built, err = p.packs.Generate(cmd.Context(), in)
		}
		if err != nil {
			return errors.New(pack.Detail(err))
		}

		outputs, skipped, err := writeOutputs(cmd, p.pdf, built)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), wizard.Summary(built, outputs, skipped))
		return nil
	},
}

func init() {
	addInputFlags(generateCmd)
	generateCmd.Flags().String("out", "", "PDF output path (default <theme>.pdf)")
	generateCmd.Flags().String("json", "", "Also write the pack as JSON to this path")
	generateCmd.Flags().BoolP("interactive", "i", false, "Ask for the theme and show progress")
}

func addInputFlags(c *cobra.Command) {
	c.Flags().String("theme", "", "Pack theme, e.g. Birds")
	c.Flags().String("level", pack.DefaultLevel, "Learner level")
	c.Flags().String("keywords", "", "Extra context for the story and pictures")
	c.Flags().String("subject", pack.DefaultSubject, "Subject: language or math")
	c.Flags().String("activity", "", "Activity, e.g. name_the_number for counting packs")
}

func inputFromFlags(c *cobra.Command) pack.Input {
	var in pack.Input
	in.Theme, _ = c.Flags().GetString("theme")
	in.Level, _ = c.Flags().GetString("level")
	in.Keywords, _ = c.Flags().GetString("keywords")
	in.Subject, _ = c.Flags().GetString("subject")
	in.Activity, _ = c.Flags().GetString("activity")
	return in
}

func writeOutputs(cmd *cobra.Command, r *pdf.Renderer, p *pack.Pack) (outputs, skipped []string, err error) {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = slug(p.Theme) + ".pdf"
	}

	doc, err := r.Render(pdf.FromPack(p))
	if err != nil {
		return nil, nil, err
	}
	if err := writeFile(out, doc.Bytes); err != nil {
		return nil, nil, err
	}
	outputs = append(outputs, out)

	if jsonPath, _ := cmd.Flags().GetString("json"); jsonPath != "" {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, nil, fmt.Errorf("encode pack: %w", err)
		}
		if err := writeFile(jsonPath, data); err != nil {
			return nil, nil, err
		}
		outputs = append(outputs, jsonPath)
	}
	return outputs, doc.Skipped, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// slug turns a theme into a file name: lower case, words joined by dashes.
func slug(theme string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(theme)) {
		switch {
		case r == ' ' || r == '-' || r == '_':
			dash = b.Len() > 0
		case r == '/' || r == '\\' || r == '.' || r < ' ':
		default:
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "pack"
	}
	return b.String()
}
