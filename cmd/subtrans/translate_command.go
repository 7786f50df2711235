package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subtrans/internal/fileutil"
	"subtrans/internal/language"
	"subtrans/internal/session"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var fromFlag string
	var toFlag string
	var draftPath string

	cmd := &cobra.Command{
		Use:   "translate <input>",
		Short: "Translate every cue and export the result",
		Long: "Translate sends each cue to the configured provider in order and writes the\n" +
			"translated track. Without -o the output is written next to the input as\n" +
			"<name>.<target><ext>. --draft also writes the editable draft that\n" +
			"'subtrans apply' reads back.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := ctx.resolveLanguages(fromFlag, toFlag)
			if err != nil {
				return err
			}
			translator, release, err := ctx.openTranslator()
			if err != nil {
				return err
			}
			defer release()

			stderr := cmd.ErrOrStderr()
			progress := newProgressPrinter(stderr, shouldColorize(stderr))
			sess, err := ctx.newSession(session.WithProgress(progress.update))
			if err != nil {
				return err
			}
			input := args[0]
			if err := sess.Load(input); err != nil {
				return err
			}
			err = sess.TranslateAll(cmd.Context(), translator, from, to)
			progress.finish()
			if err != nil {
				return err
			}

			output := strings.TrimSpace(outputPath)
			if output == "" {
				output = defaultOutputPath(input, to)
			}
			written, err := sess.Export(output)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Translated %d cues %s -> %s\n", sess.Track().Len(), language.DisplayName(from), language.DisplayName(to))
			fmt.Fprintf(out, "Wrote %s\n", written)
			if draft := strings.TrimSpace(draftPath); draft != "" {
				if err := fileutil.WriteFileAtomic(draft, []byte(sess.RenderDraft()+"\n"), 0o644); err != nil {
					return fmt.Errorf("write draft: %w", err)
				}
				fmt.Fprintf(out, "Wrote draft %s\n", draft)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output subtitle path (.srt or .ass)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Source language (default translation.source_language)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Target language (default translation.target_language)")
	cmd.Flags().StringVar(&draftPath, "draft", "", "Also write the editable draft to this path")
	return cmd
}

// defaultOutputPath places the translation next to input, tagged with the
// target language: movie.srt -> movie.zh.srt.
func defaultOutputPath(input, target string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + "." + target + ext
}

type progressPrinter struct {
	w       io.Writer
	enabled bool
	drawn   bool
}

// newProgressPrinter redraws a single status line on terminals and stays
// silent otherwise so redirected stderr is not filled with updates.
func newProgressPrinter(w io.Writer, enabled bool) *progressPrinter {
	return &progressPrinter{w: w, enabled: enabled}
}

func (p *progressPrinter) update(done, total int) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(p.w, "\rTranslating %d/%d", done, total)
	p.drawn = true
}

func (p *progressPrinter) finish() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}
