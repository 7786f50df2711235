package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "apply <input> <draft>",
		Short: "Apply an edited draft to a subtitle file",
		Long: "Apply maps the paragraphs of an edited draft onto the cues of <input> by\n" +
			"position and exports the result. Paragraphs are separated by blank lines;\n" +
			"a leading \"N. \" is stripped.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read draft: %w", err)
			}
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			if err := sess.Load(args[0]); err != nil {
				return err
			}
			if err := sess.ApplyEdits(string(draft)); err != nil {
				return err
			}
			written, err := sess.Export(strings.TrimSpace(outputPath))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d of %d cues translated)\n",
				written, sess.Track().TranslatedCount(), sess.Track().Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output subtitle path (.srt or .ass)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
