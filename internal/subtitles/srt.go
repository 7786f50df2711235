package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asticode/go-astisub"
)

const srtArrow = "-->"

type srtBlock struct {
	position int
	lines    []string
}

// decodeSRT reads the file block by block so malformed input is reported
// with its sequence number. Each timing line is handed to astisub on its own,
// which keeps text lines containing an arrow out of its timing detection.
func decodeSRT(text string) ([]Cue, error) {
	blocks := splitSRTBlocks(text)
	cues := make([]Cue, 0, len(blocks))
	for _, blk := range blocks {
		cue, err := decodeSRTBlock(blk)
		if err != nil {
			return nil, err
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

func decodeSRTTiming(start, end string) (*astisub.Item, error) {
	subs, err := astisub.ReadFromSRT(strings.NewReader("1\n" + start + " " + srtArrow + " " + end + "\n"))
	if err != nil {
		return nil, err
	}
	if len(subs.Items) != 1 {
		return nil, fmt.Errorf("decoded %d timings", len(subs.Items))
	}
	return subs.Items[0], nil
}

func splitSRTBlocks(text string) []srtBlock {
	var (
		blocks  []srtBlock
		current []string
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, srtBlock{position: len(blocks) + 1, lines: current})
		current = nil
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

func decodeSRTBlock(blk srtBlock) (Cue, error) {
	seqLine := strings.TrimSpace(blk.lines[0])
	seq, err := strconv.Atoi(seqLine)
	if err != nil || seq < 0 {
		return Cue{}, &ParseError{
			Format: FormatSRT,
			Block:  blk.position,
			Reason: fmt.Sprintf("invalid sequence line %q", seqLine),
		}
	}
	fail := func(reason string, err error) error {
		return &ParseError{Format: FormatSRT, Seq: seq, Block: blk.position, Reason: reason, Err: err}
	}
	if len(blk.lines) < 2 {
		return Cue{}, fail("missing timing line", nil)
	}
	startText, endText, ok := strings.Cut(blk.lines[1], srtArrow)
	if !ok {
		return Cue{}, fail(fmt.Sprintf("timing line %q has no %s", strings.TrimSpace(blk.lines[1]), srtArrow), nil)
	}
	startText = strings.TrimSpace(startText)
	if _, err := parseSRTTimestamp(startText); err != nil {
		return Cue{}, fail(fmt.Sprintf("start: %v", err), nil)
	}
	// Position hints may follow the end timestamp.
	endFields := strings.Fields(endText)
	if len(endFields) == 0 {
		return Cue{}, fail("missing end timestamp", nil)
	}
	if _, err := parseSRTTimestamp(endFields[0]); err != nil {
		return Cue{}, fail(fmt.Sprintf("end: %v", err), nil)
	}
	if len(blk.lines) < 3 {
		return Cue{}, fail("missing text", nil)
	}
	item, err := decodeSRTTiming(startText, endFields[0])
	if err != nil {
		return Cue{}, fail("timing", err)
	}
	text := make([]string, 0, len(blk.lines)-2)
	for _, line := range blk.lines[2:] {
		text = append(text, strings.TrimSpace(line))
	}
	return Cue{
		Start: formatSRTTimestamp(item.StartAt),
		End:   formatSRTTimestamp(item.EndAt),
		Text:  strings.Join(text, "\n"),
	}, nil
}

func writeSRT(w io.Writer, cues []Cue, source Format) error {
	bw := bufio.NewWriter(w)
	seq := 0
	for _, cue := range cues {
		// A block without text would not read back; blank translations fall
		// back to the source text and cues with neither are left out.
		text := CompactText(cue.OutputText())
		if text == "" {
			text = CompactText(cue.Text)
		}
		if text == "" {
			continue
		}
		seq++
		fmt.Fprintf(bw, "%d\n%s %s %s\n%s\n\n",
			seq,
			convertTimestamp(cue.Start, source, FormatSRT),
			srtArrow,
			convertTimestamp(cue.End, source, FormatSRT),
			text,
		)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}
