package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/cache"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
)

// Renderer serializes a Cache's contents into exposition text in the
// configured Style.
type Renderer struct {
	style Style
}

// New builds a Renderer for the given, fixed Style.
func New(style Style) *Renderer {
	return &Renderer{style: style}
}

// Render walks c in emission order and returns the full scrape body.
func (r *Renderer) Render(c *cache.Cache) []byte {
	var buf strings.Builder

	var lastName string
	var lastType metric.Type
	var lastUnit metric.Unit
	var lastHelp string
	haveLast := false

	c.Visit(func(d *metric.Data) {
		newHeaders := !haveLast || lastName != d.Id.Name || lastType != d.MetricType || lastHelp != d.Help
		newUnit := !haveLast || lastUnit != d.MetricUnit

		if newHeaders || newUnit {
			r.writeHeaders(&buf, d, newUnit)
			lastName, lastType, lastUnit, lastHelp, haveLast = d.Id.Name, d.MetricType, d.MetricUnit, d.Help, true
		}

		r.writeSample(&buf, d)
	})

	if r.style == StyleOpenMetric {
		buf.WriteString("# EOF\n")
	}

	return []byte(buf.String())
}

func (r *Renderer) writeHeaders(buf *strings.Builder, d *metric.Data, newUnit bool) {
	fmt.Fprintf(buf, "# HELP %s %s\n", d.Id.Name, d.Help)
	fmt.Fprintf(buf, "# TYPE %s %s\n", d.Id.Name, d.MetricType)
	if newUnit && d.MetricUnit != metric.UnitNone {
		fmt.Fprintf(buf, "# UNIT %s %s\n", d.Id.Name, d.MetricUnit)
	}
}

func (r *Renderer) writeSample(buf *strings.Builder, d *metric.Data) {
	buf.WriteString(d.Id.Name)

	if d.Labels.Len() > 0 {
		buf.WriteByte('{')
		first := true
		d.Labels.Range(func(name, value string) {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			buf.WriteString(name)
			buf.WriteString(`="`)
			buf.WriteString(escapeLabelValue(value))
			buf.WriteByte('"')
		})
		buf.WriteByte('}')
	}

	buf.WriteByte(' ')
	buf.WriteString(d.Value)

	if d.TimestampPolicy == metric.TimestampOn {
		buf.WriteByte(' ')
		buf.WriteString(r.formatTimestamp(d.Timestamp))
	}

	buf.WriteByte('\n')
}

// formatTimestamp renders Data.Timestamp (always stored in milliseconds)
// according to the active Style: a plain millisecond integer for
// Prometheus text format, or seconds with microsecond-resolution
// fractional digits for OpenMetrics.
func (r *Renderer) formatTimestamp(ms int64) string {
	if r.style == StylePrometheus {
		return strconv.FormatInt(ms, 10)
	}
	seconds := ms / 1000
	micros := (ms % 1000) * 1000
	return fmt.Sprintf("%d.%06d", seconds, micros)
}

func escapeLabelValue(v string) string {
	if !strings.ContainsAny(v, "\\\"\n") {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 4)
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
