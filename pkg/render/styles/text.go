package styles

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const (
	fontSizeCenter    = 16.0
	fontSizePrimary   = 13.0
	fontSizeSecondary = 11.0
	fontCharWidth     = 0.55

	// labelFill is the share of the diameter a line may use.
	labelFill = 0.9
	maxLines  = 2
)

// fontSteps are the scale factors tried, largest first, before a label is cut.
var fontSteps = []float64{1, 0.85, 0.7}

// FontSize returns the base label size for a node.
func FontSize(n Node) float64 {
	switch n.Kind {
	case KindCenter:
		return fontSizeCenter
	case KindPrimary:
		return fontSizePrimary
	default:
		return fontSizeSecondary
	}
}

// Label is a node label fitted into its circle.
type Label struct {
	Lines    []string
	FontSize float64
}

// lineWidth returns how many characters of the given size fit across n.
func lineWidth(n Node, size float64) int {
	return max(int(2*n.R*labelFill/(size*fontCharWidth)), 3)
}

// FitLabel fits n's label into its circle. At each font step it tries one
// line, then two lines broken between words. A label that fits at no step is
// hard-wrapped at the smallest size and its last line ends in "..".
func FitLabel(n Node) Label {
	words := strings.Fields(n.Label)
	if len(words) == 0 {
		return Label{FontSize: FontSize(n)}
	}
	for _, step := range fontSteps {
		size := FontSize(n) * step
		if lines, ok := wrapWords(words, lineWidth(n, size)); ok {
			return Label{Lines: lines, FontSize: size}
		}
	}

	size := FontSize(n) * fontSteps[len(fontSteps)-1]
	width := lineWidth(n, size)
	runes := []rune(strings.Join(words, " "))
	var lines []string
	for len(runes) > 0 && len(lines) < maxLines {
		k := min(width, len(runes))
		lines = append(lines, strings.TrimSpace(string(runes[:k])))
		runes = runes[k:]
	}
	if len(runes) > 0 {
		last := []rune(lines[len(lines)-1])
		lines[len(lines)-1] = string(last[:width-2]) + ".."
	}
	return Label{Lines: lines, FontSize: size}
}

// wrapWords greedily packs words into at most maxLines lines of width runes.
// It fails when a word is wider than a line or more lines are needed.
func wrapWords(words []string, width int) ([]string, bool) {
	var lines []string
	var cur []rune
	for _, w := range words {
		wr := []rune(w)
		if len(wr) > width {
			return nil, false
		}
		switch {
		case len(cur) == 0:
			cur = wr
		case len(cur)+1+len(wr) <= width:
			cur = append(append(cur, ' '), wr...)
		default:
			lines = append(lines, string(cur))
			cur = wr
		}
	}
	lines = append(lines, string(cur))
	return lines, len(lines) <= maxLines
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
