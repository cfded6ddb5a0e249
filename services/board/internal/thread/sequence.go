package thread

import (
	"cmp"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Metrics counts the malformed linkage seen while building sequences.
type Metrics struct {
	Malformed *prometheus.CounterVec
	Builds    prometheus.Counter
}

// NewMetrics registers the thread counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Malformed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "board_thread_malformed_links_total",
			Help: "Comments whose parent linkage was dangling or cyclic",
		}, []string{"kind"}),
		Builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "board_thread_builds_total",
			Help: "Render sequences built",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Malformed, m.Builds)
	}
	return m
}

// Builder produces render sequences and reports malformed linkage. The zero
// value and a nil *Builder are usable and silent.
type Builder struct {
	log     *zap.Logger
	metrics *Metrics
}

func NewBuilder(log *zap.Logger, metrics *Metrics) *Builder {
	return &Builder{log: log, metrics: metrics}
}

// BuildRenderSequence orders the visible comments of collection into root
// blocks: each root is followed by all of its visible descendants in
// chronological order. Comments whose chain never reaches a root are appended
// as extra groups after the regular ones.
func BuildRenderSequence(collection []Comment) []Entry {
	var b *Builder
	return b.Build(collection)
}

func (b *Builder) Build(collection []Comment) []Entry {
	idx := NewIndex(collection)
	visible := selectVisible(idx, collection)
	b.reportDangling(idx, collection)

	out := make([]Entry, 0, len(visible))
	emitted := make([]bool, len(visible))

	emitGroup := func(rootPos int) {
		root := visible[rootPos]
		emitted[rootPos] = true
		out = append(out, Entry{Comment: root, Placeholder: root.SoftDeleted()})

		var desc []int
		for p, c := range visible {
			if emitted[p] {
				continue
			}
			if idx.IsDescendantOf(c, root.ID) {
				desc = append(desc, p)
			}
		}
		slices.SortStableFunc(desc, func(x, y int) int {
			return compareChronological(visible[x], visible[y])
		})
		for _, p := range desc {
			emitted[p] = true
			c := visible[p]
			out = append(out, Entry{Comment: c, IsReply: true, Placeholder: c.SoftDeleted()})
		}
	}

	for p, c := range visible {
		if !emitted[p] && c.isRoot(idx) {
			emitGroup(p)
		}
	}
	for p, c := range visible {
		if emitted[p] {
			continue
		}
		b.fault(faultCycle, c)
		emitGroup(p)
	}

	if b != nil && b.metrics != nil {
		b.metrics.Builds.Inc()
	}
	return out
}

// compareChronological orders by CreatedAt then ID. Comments without a
// timestamp come first, ordered by ID among themselves.
func compareChronological(a, b Comment) int {
	aMissing, bMissing := a.CreatedAt.IsZero(), b.CreatedAt.IsZero()
	switch {
	case aMissing && !bMissing:
		return -1
	case !aMissing && bMissing:
		return 1
	case !aMissing:
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}

func (b *Builder) reportDangling(idx Index, collection []Comment) {
	if b == nil {
		return
	}
	for _, c := range collection {
		if c.ParentID != nil && !idx.Has(*c.ParentID) {
			b.fault(faultDangling, c)
		}
	}
}

func (b *Builder) fault(kind linkFault, c Comment) {
	if b == nil {
		return
	}
	name := kind.String()
	if b.log != nil {
		fields := []zap.Field{zap.String("kind", name), zap.Int64("comment_id", c.ID)}
		if c.ParentID != nil {
			fields = append(fields, zap.Int64("parent_id", *c.ParentID))
		}
		b.log.Debug("thread: malformed comment link", fields...)
	}
	if b.metrics != nil {
		b.metrics.Malformed.WithLabelValues(name).Inc()
	}
}

func (f linkFault) String() string {
	switch f {
	case faultDangling:
		return "dangling"
	case faultCycle:
		return "cycle"
	default:
		return "none"
	}
}
