package subtitles

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"subtrans/internal/fileutil"
)

// Parse reads the subtitle file at path and returns its track. The file must
// exist and carry a .srt or .ass extension.
func Parse(path string) (*Track, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat subtitle: %w", err)
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle: %w", err)
	}
	cues, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return NewTrack(format, path, cues), nil
}

// Decode parses raw file content in the given format.
func Decode(data []byte, format Format) ([]Cue, error) {
	text, err := decodeText(data, format)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSRT:
		return decodeSRT(text)
	case FormatASS:
		return decodeASS(text), nil
	default:
		return nil, &UnsupportedFormatError{Extension: string(format)}
	}
}

// Serialize writes track to outputPath using the writer selected by the
// output extension. Nothing is written when the extension is unsupported.
func Serialize(track *Track, outputPath string) error {
	format, err := FormatFromPath(outputPath)
	if err != nil {
		return err
	}
	if track == nil {
		return errors.New("serialize: nil track")
	}
	var buf bytes.Buffer
	if err := Encode(&buf, track, format); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

// Encode writes track to w in the given format. Timestamps are converted
// when the track was read from a different format.
func Encode(w io.Writer, track *Track, format Format) error {
	var cues []Cue
	source := format
	if track != nil {
		cues = track.Cues
		if track.Format != "" {
			source = track.Format
		}
	}
	switch format {
	case FormatSRT:
		return writeSRT(w, cues, source)
	case FormatASS:
		return writeASS(w, cues, source)
	default:
		return &UnsupportedFormatError{Extension: string(format)}
	}
}

// decodeText strips a UTF-8 or UTF-16 byte order mark, transcodes to UTF-8,
// and normalizes line endings to LF. Input without a UTF-16 byte order mark
// must be valid UTF-8; legacy 8-bit encodings are rejected, not guessed.
func decodeText(data []byte, format Format) (string, error) {
	if !hasUTF16BOM(data) && !utf8.Valid(data) {
		return "", &ParseError{Format: format, Reason: "text is not valid UTF-8"}
	}
	decoder := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", &ParseError{Format: format, Reason: "decode text", Err: err}
	}
	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}
