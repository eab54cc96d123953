package renderer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// AfterPaintFunc runs once a chart has been painted into node.
type AfterPaintFunc func(node *Element, chart *Chart)

// ChartFunc draws data into node. The draw itself is deferred through the
// registry's Scheduler; the returned handle is nil when nothing was drawn.
type ChartFunc func(node *Element, data any, options RenderOptions, after AfterPaintFunc) *Chart

// Registry maps widget kinds to chart drawing functions.
type Registry struct {
	logger    hclog.Logger
	scheduler Scheduler
	prefix    string

	mu  sync.Mutex
	seq int
}

// NewRegistry returns a Registry. Chart ids are derived from prefix.
func NewRegistry(prefix string, logger hclog.Logger, scheduler Scheduler) *Registry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if scheduler == nil {
		scheduler = Immediate()
	}
	return &Registry{logger: logger, scheduler: scheduler, prefix: chartIDPrefix(prefix)}
}

// chartIDPrefix turns an arbitrary widget id into a JS identifier fragment.
func chartIDPrefix(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "chart"
	}
	return "chart_" + sb.String()
}

func (r *Registry) nextID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return fmt.Sprintf("%s_%d", r.prefix, r.seq)
}

// Chart returns the drawing function for kind. Unknown kinds get a function
// that logs a warning and draws nothing.
func (r *Registry) Chart(kind Kind) ChartFunc {
	switch kind {
	case KindPie:
		return r.drawPie
	case KindStackedArea:
		return r.drawArea
	case KindLines:
		return r.drawLines
	case KindHistogram:
		return r.drawHistogram
	default:
		return func(node *Element, data any, options RenderOptions, after AfterPaintFunc) *Chart {
			r.logger.Warn(ErrUnknownKind.Error(), "widget", string(kind))
			return nil
		}
	}
}

// Insufficient reports whether data is present but too thin to draw kind.
func (r *Registry) Insufficient(kind Kind, data any) bool {
	switch kind {
	case KindPie:
		return pieInsufficient(data)
	case KindStackedArea, KindLines:
		return pointsInsufficient(data)
	default:
		return false
	}
}
