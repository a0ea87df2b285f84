package dashboard

import "io"

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// ChartRenderer turns chart props into embeddable markup.
type ChartRenderer interface {
	Render(viewer ViewerContext, props BarChartProps) (BarChartView, error)
}

var _ ChartRenderer = (*BarChartRenderer)(nil)
