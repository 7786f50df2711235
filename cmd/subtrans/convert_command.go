package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a subtitle file between SRT and ASS",
		Long: "Convert reads an SRT or ASS file and writes it in the format selected by the\n" +
			"output extension. Timestamps are rewritten in the output format's notation.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			if err := sess.Load(args[0]); err != nil {
				return err
			}
			written, err := sess.Export(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", sess.Track().Len(), written)
			return nil
		},
	}
}
