package styles

import (
	"bytes"
	"fmt"
)

// Simple paints flat circles and static connectors.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer, t Theme) {
	fmt.Fprintf(buf, "  <style>%s</style>\n", t.CSS())
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	renderLine(buf, c, "")
}

func (Simple) RenderNode(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, `  <circle id="node-%s" class="node %s" cx="%.2f" cy="%.2f" r="%.2f" style="fill: %s" stroke="white" stroke-width="2"/>`+"\n",
		EscapeXML(n.ID), kindClass(n.Kind), n.CX, n.CY, n.R, EscapeXML(n.Color))
}

// RenderLabel centers the fitted label on the node. Two-line labels are
// split into tspans half a line above and below the center.
func (Simple) RenderLabel(buf *bytes.Buffer, n Node) {
	l := FitLabel(n)
	if len(l.Lines) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f" style="fill: var(--text)">`,
		n.CX, n.CY, l.FontSize)
	if len(l.Lines) == 1 {
		buf.WriteString(EscapeXML(l.Lines[0]))
	} else {
		for i, line := range l.Lines {
			dy := "1.2em"
			if i == 0 {
				dy = "-0.6em"
			}
			fmt.Fprintf(buf, `<tspan x="%.2f" dy="%s">%s</tspan>`, n.CX, dy, EscapeXML(line))
		}
	}
	buf.WriteString("</text>\n")
}

// renderLine writes a connector; inner is placed inside the <line> element.
func renderLine(buf *bytes.Buffer, c Connector, inner string) {
	dash := ""
	if c.Animated {
		dash = ` stroke-dasharray="5,5"`
	}
	fmt.Fprintf(buf, `  <line class="connector" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" style="stroke: %s" stroke-width="%.0f" opacity="%.1f"%s`,
		c.X1, c.Y1, c.X2, c.Y2, EscapeXML(c.Color), c.Width, c.Opacity, dash)
	if inner == "" {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, ">%s</line>\n", inner)
}

func kindClass(k Kind) string {
	switch k {
	case KindCenter:
		return "central"
	case KindPrimary:
		return "level-1"
	default:
		return "level-2"
	}
}
