package filerenamer

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// A frame number left by a previous sequence, e.g. "shot_0007" or "plate.1001".
	trailingSequencePattern = regexp.MustCompile(`[._](\d{3,5})$`)
	digitRunPattern         = regexp.MustCompile(`\d+`)
)

// NumericSuffix is a run of decimal digits found in a stem together with the
// text on either side of it.
type NumericSuffix struct {
	Prefix string
	Digits string
	Suffix string
}

func (n NumericSuffix) String() string {
	return n.Prefix + n.Digits + n.Suffix
}

// SplitName splits a base name at its last dot. The extension keeps the dot.
// Leading dots never start an extension, so ".bashrc" has no extension.
func SplitName(name string) (stem, ext string) {
	leading := len(name) - len(strings.TrimLeft(name, "."))
	i := strings.LastIndex(name[leading:], ".")
	if i < 0 {
		return name, ""
	}
	i += leading
	return name[:i], name[i:]
}

// trailingSequence matches a separator followed by 3-5 digits at the end of
// the stem. The separator belongs to neither Prefix nor Suffix.
func trailingSequence(stem string) (NumericSuffix, bool) {
	loc := trailingSequencePattern.FindStringSubmatchIndex(stem)
	if loc == nil {
		return NumericSuffix{}, false
	}
	return NumericSuffix{
		Prefix: stem[:loc[0]],
		Digits: stem[loc[2]:loc[3]],
	}, true
}

// firstDigitRun finds the leftmost run of digits anywhere in the stem.
func firstDigitRun(stem string) (NumericSuffix, bool) {
	loc := digitRunPattern.FindStringIndex(stem)
	if loc == nil {
		return NumericSuffix{}, false
	}
	return NumericSuffix{
		Prefix: stem[:loc[0]],
		Digits: stem[loc[0]:loc[1]],
		Suffix: stem[loc[1]:],
	}, true
}

// zeroPad left-pads digits with zeros up to width. Width is a floor.
func zeroPad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}

func formatFrame(frame, width int) string {
	return fmt.Sprintf("%0*d", width, frame)
}

// ComputeNewName applies rules to filename. The counter is the zero based
// position of the file among the renumbered files of a batch; it only matters
// when renumbering is enabled.
func ComputeNewName(filename string, counter int, rules Rules) string {
	stem, ext := SplitName(filename)

	if rules.ReplaceEnabled && rules.FindText != "" {
		stem = strings.ReplaceAll(stem, rules.FindText, rules.ReplaceText)
	}

	switch {
	case rules.RenumberEnabled:
		if seq, ok := trailingSequence(stem); ok {
			stem = seq.Prefix
		}
		stem = stem + "." + formatFrame(rules.StartNumber+counter, rules.PadWidth())
	case rules.PaddingEnabled:
		if run, ok := firstDigitRun(stem); ok {
			run.Digits = zeroPad(run.Digits, rules.PadWidth())
			stem = run.String()
		}
	}

	if newExt := rules.Extension(); newExt != "" {
		ext = "." + newExt
	}

	return stem + ext
}
