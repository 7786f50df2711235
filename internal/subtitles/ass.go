package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	assEventsHeader   = "[Events]"
	assDialoguePrefix = "Dialogue:"
	assLineBreak      = `\N`
)

// Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
const (
	assFieldCount = 10
	assStartField = 1
	assEndField   = 2
	assTextField  = 9
)

const assHeader = "[Script Info]\n" +
	"Title: subtrans export\n" +
	"ScriptType: v4.00+\n" +
	"WrapStyle: 0\n" +
	"\n" +
	"[V4+ Styles]\n" +
	"Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n" +
	"Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n" +
	"\n" +
	assEventsHeader + "\n" +
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n"

// decodeASS reads Dialogue lines from the [Events] section. A file without
// that section yields no cues. Dialogue lines with fewer than ten fields are
// skipped; the text field keeps any commas it contains.
func decodeASS(text string) []Cue {
	lines := strings.Split(text, "\n")
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) != assEventsHeader {
		i++
	}
	cues := []Cue{}
	for i++; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, assDialoguePrefix) {
			continue
		}
		fields := strings.SplitN(line, ",", assFieldCount)
		if len(fields) < assFieldCount {
			continue
		}
		cues = append(cues, Cue{
			Start: strings.TrimSpace(fields[assStartField]),
			End:   strings.TrimSpace(fields[assEndField]),
			Text:  strings.ReplaceAll(fields[assTextField], assLineBreak, "\n"),
		})
	}
	return cues
}

func writeASS(w io.Writer, cues []Cue, source Format) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(assHeader)
	for _, cue := range cues {
		fmt.Fprintf(bw, "%s 0,%s,%s,Default,,0,0,0,,%s\n",
			assDialoguePrefix,
			convertTimestamp(cue.Start, source, FormatASS),
			convertTimestamp(cue.End, source, FormatASS),
			strings.ReplaceAll(cue.OutputText(), "\n", assLineBreak),
		)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ass: %w", err)
	}
	return nil
}
