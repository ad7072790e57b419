package styles

import "bytes"

const dashAnimation = `<animate attributeName="stroke-dashoffset" values="0;-10" dur="1s" repeatCount="indefinite"/>`

// Animated is [Simple] with scrolling dashes on animated connectors.
type Animated struct{ Simple }

func (Animated) RenderConnector(buf *bytes.Buffer, c Connector) {
	if !c.Animated {
		renderLine(buf, c, "")
		return
	}
	renderLine(buf, c, dashAnimation)
}
