package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Auto asks the provider to detect the source language.
const Auto = "auto"

type entry struct {
	code2 string   // ISO 639-1 (2-letter)
	code3 string   // ISO 639-2 primary (3-letter)
	alt3  string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	words []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", []string{"english"}},
	{"es", "spa", "", []string{"spanish"}},
	{"fr", "fra", "fre", []string{"french"}},
	{"de", "deu", "ger", []string{"german"}},
	{"it", "ita", "", []string{"italian"}},
	{"pt", "por", "", []string{"portuguese"}},
	{"ja", "jpn", "", []string{"japanese"}},
	{"ko", "kor", "", []string{"korean"}},
	{"zh", "zho", "chi", []string{"chinese"}},
	{"ru", "rus", "", []string{"russian"}},
	{"ar", "ara", "", []string{"arabic"}},
	{"hi", "hin", "", []string{"hindi"}},
	{"nl", "nld", "dut", []string{"dutch"}},
	{"pl", "pol", "", []string{"polish"}},
	{"sv", "swe", "", []string{"swedish"}},
	{"da", "dan", "", []string{"danish"}},
	{"no", "nor", "", []string{"norwegian"}},
	{"fi", "fin", "", []string{"finnish"}},
	{"vi", "vie", "", []string{"vietnamese"}},
	{"th", "tha", "", []string{"thai"}},
}

var aliases = func() map[string]string {
	m := make(map[string]string, len(languages)*3)
	for _, e := range languages {
		m[e.code3] = e.code2
		if e.alt3 != "" {
			m[e.alt3] = e.code2
		}
		for _, w := range e.words {
			m[w] = e.code2
		}
	}
	return m
}()

var (
	traditional = language.MustParseScript("Hant")
	chinese     = language.MustParseBase("zh")
)

// Normalize converts code into the provider's form. It returns an error for
// empty input and for tags x/text does not recognize.
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", fmt.Errorf("language code is empty")
	}
	lowered := strings.ToLower(trimmed)
	if lowered == Auto {
		return Auto, nil
	}
	if mapped, ok := aliases[lowered]; ok {
		trimmed = mapped
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("unrecognized language %q: %w", code, err)
	}
	base, confidence := tag.Base()
	if confidence == language.No || base.String() == "und" {
		return "", fmt.Errorf("unrecognized language %q", code)
	}
	if base == chinese {
		if script, _ := tag.Script(); script == traditional {
			return "zh-Hant", nil
		}
		return "zh", nil
	}
	return base.String(), nil
}

// IsAuto reports whether code requests source-language detection.
func IsAuto(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), Auto)
}

// DisplayName returns an English name for code. Unrecognized codes are
// returned uppercased and empty input reports "Unknown".
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if IsAuto(code) {
		return "Auto-detect"
	}
	normalized, err := Normalize(code)
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	if name := display.English.Tags().Name(language.Make(normalized)); name != "" {
		return name
	}
	return strings.ToUpper(normalized)
}
