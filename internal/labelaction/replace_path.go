package labelaction

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/replace"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// ReplacePath looks the concrete topic up in an embedded, frozen topic
// automaton whose payload at each matching filter is a list of compiled
// replacement formats; every formatter in every matching payload list is
// expanded against the topic's levels and assigned to output[Target].
// Later matches overwrite earlier ones (last write wins), resolving the
// spec's Open Question on multiple ReplacePath matches in favor of
// overwrite rather than union.
type ReplacePath struct {
	Target string
	topics *topic.Frozen[[]*replace.Format]
}

const replacePathName = "replace-path"

// NewReplacePath builds a ReplacePath action from an already-frozen
// per-action topic automaton (built by the config layer from the
// action's `replace[]` entries).
func NewReplacePath(target string, topics *topic.Frozen[[]*replace.Format]) *ReplacePath {
	return &ReplacePath{Target: target, topics: topics}
}

// Apply implements Action. input is unused: the replacement only depends
// on the concrete topic's levels, not on any previously-derived labels.
func (r *ReplacePath) Apply(_ *metric.Labels, levels topic.Levels, output *metric.Labels) {
	if r.topics == nil {
		return
	}
	for _, formatList := range r.topics.Find(levels) {
		for _, formats := range formatList {
			for _, f := range formats {
				output.Set(r.Target, f.String(levels))
			}
		}
	}
}

// Name implements Action.
func (r *ReplacePath) Name() string { return replacePathName }
