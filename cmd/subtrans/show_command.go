package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subtrans/internal/session"
	"subtrans/internal/subtitles"
)

const showTextWidth = 48

type showCue struct {
	Index       int     `json:"index"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Text        string  `json:"text"`
	Translation *string `json:"translation,omitempty"`
}

type showOutput struct {
	Session session.Summary `json:"session"`
	Cues    []showCue       `json:"cues"`
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var draftPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <input>",
		Short: "List the cues of a subtitle file",
		Long: "Show prints the cues of an SRT or ASS file as a table. With --draft the\n" +
			"edited draft is applied first and shown in a Translation column.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			if err := sess.Load(args[0]); err != nil {
				return err
			}
			if path := strings.TrimSpace(draftPath); path != "" {
				draft, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read draft: %w", err)
				}
				if err := sess.ApplyEdits(string(draft)); err != nil {
					return err
				}
			}

			cues := sess.Cues()
			if jsonOutput {
				return writeJSON(cmd, showOutput{Session: sess.Summary(), Cues: showCues(cues)})
			}

			out := cmd.OutOrStdout()
			summary := sess.Summary()
			heading := fmt.Sprintf("%s (%s, %d cues)", summary.Path, strings.ToUpper(string(summary.Format)), summary.Cues)
			fmt.Fprintln(out, renderHeading(heading, shouldColorize(out)))
			if len(cues) == 0 {
				fmt.Fprintln(out, "No cues")
				return nil
			}
			fmt.Fprintln(out, renderCueTable(cues, summary.Translated > 0))
			return nil
		},
	}

	cmd.Flags().StringVar(&draftPath, "draft", "", "Apply this edited draft before listing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderCueTable(cues []subtitles.Cue, withTranslation bool) string {
	columns := []columnSpec{
		{Header: "#", Align: alignRight},
		{Header: "Start"},
		{Header: "End"},
		{Header: "Text", WidthMax: showTextWidth},
	}
	if withTranslation {
		columns = append(columns, columnSpec{Header: "Translation", WidthMax: showTextWidth})
	}
	rows := make([][]string, 0, len(cues))
	for _, cue := range cues {
		row := []string{strconv.Itoa(cue.Index), cue.Start, cue.End, cue.Text}
		if withTranslation {
			translation, _ := cue.Translation()
			row = append(row, translation)
		}
		rows = append(rows, row)
	}
	return renderTable(columns, rows)
}

func showCues(cues []subtitles.Cue) []showCue {
	out := make([]showCue, 0, len(cues))
	for _, cue := range cues {
		item := showCue{Index: cue.Index, Start: cue.Start, End: cue.End, Text: cue.Text}
		if translation, ok := cue.Translation(); ok {
			item.Translation = &translation
		}
		out = append(out, item)
	}
	return out
}
