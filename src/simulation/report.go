package simulation

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kataras/tablewriter"
	"github.com/lensesio/tableprinter"
	"github.com/mosaicnetworks/eventlinker/src/common"
	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
	"github.com/mosaicnetworks/eventlinker/src/linker"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

// Report summarises a simulation.
type Report struct {
	Linker      string `json:"linker"`
	AncientMode string `json:"ancient_mode"`
	Peers       int    `json:"peers"`

	Generated int `json:"generated"`
	Forged    int `json:"forged"`
	Dropped   int `json:"dropped"`
	Delivered int `json:"delivered"`

	// events handed to the consumer with both parents, with one, with none
	BothParents int `json:"both_parents"`
	OneParent   int `json:"one_parent"`
	NoParent    int `json:"no_parent"`

	Stats linker.Stats `json:"stats"`

	IndexedMedian int `json:"indexed_median"`
	IndexedP95    int `json:"indexed_p95"`
	IndexedFinal  int `json:"indexed_final"`

	HeapAlloc uint64        `json:"heap_alloc"`
	RSS       uint64        `json:"rss"`
	Elapsed   time.Duration `json:"elapsed"`
}

func (r *Report) observe(e *hashgraph.LinkedEvent) {
	switch {
	case e.SelfParent() != nil && e.OtherParent() != nil:
		r.BothParents++
	case e.HasParents():
		r.OneParent++
	default:
		r.NoParent++
	}
}

func (r *Report) finish(l linker.EventLinker, samples []int, elapsed time.Duration) {
	r.Stats = l.Stats()
	r.IndexedMedian = common.Median(samples)
	r.IndexedP95 = common.Percentile(samples, 95)
	r.IndexedFinal = l.Len()
	r.Elapsed = elapsed
}

func (r *Report) measureMemory(logger *logrus.Entry) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.HeapAlloc = m.HeapAlloc

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.WithError(err).Warn("Cannot inspect process")
		return
	}
	mi, err := p.MemoryInfo()
	if err != nil {
		logger.WithError(err).Warn("Cannot read process memory")
		return
	}
	r.RSS = mi.RSS
}

// ReportRow is one line of a printed Report.
type ReportRow struct {
	Metric string `header:"metric"`
	Value  string `header:"value"`
}

// Rows flattens the Report for printing.
func (r *Report) Rows() []ReportRow {
	n := func(v uint64) string { return humanize.Comma(int64(v)) }
	i := func(v int) string { return humanize.Comma(int64(v)) }

	sp, op := r.Stats.SelfParent, r.Stats.OtherParent

	return []ReportRow{
		{"linker", r.Linker},
		{"ancient mode", r.AncientMode},
		{"peers", i(r.Peers)},
		{"generated", i(r.Generated)},
		{"forged", i(r.Forged)},
		{"dropped", i(r.Dropped)},
		{"delivered", i(r.Delivered)},
		{"linked", n(r.Stats.Linked)},
		{"discarded ancient", n(r.Stats.DiscardedAncient)},
		{"duplicates", n(r.Stats.Duplicates)},
		{"both parents", i(r.BothParents)},
		{"one parent", i(r.OneParent)},
		{"no parent", i(r.NoParent)},
		{"self-parent missing", n(sp.Missing)},
		{"self-parent ancient", n(sp.Ancient)},
		{"self-parent mismatched", n(sp.Mismatched())},
		{"other-parent missing", n(op.Missing)},
		{"other-parent ancient", n(op.Ancient)},
		{"other-parent mismatched", n(op.Mismatched())},
		{"window updates", n(r.Stats.WindowUpdates)},
		{"evicted", n(r.Stats.Evicted)},
		{"unlinked", n(r.Stats.Unlinked)},
		{"indexed max", i(r.Stats.MaxIndexed)},
		{"indexed median", i(r.IndexedMedian)},
		{"indexed p95", i(r.IndexedP95)},
		{"indexed final", i(r.IndexedFinal)},
		{"heap", humanize.Bytes(r.HeapAlloc)},
		{"rss", humanize.Bytes(r.RSS)},
		{"elapsed", r.Elapsed.String()},
	}
}

// Print writes the Report as a table.
func (r *Report) Print(w io.Writer) {
	printer := tableprinter.New(w)

	printer.BorderTop, printer.BorderBottom, printer.BorderLeft, printer.BorderRight = true, true, true, true
	printer.CenterSeparator = "│"
	printer.ColumnSeparator = "│"
	printer.RowSeparator = "─"
	printer.HeaderBgColor = tablewriter.BgBlackColor
	printer.HeaderFgColor = tablewriter.FgGreenColor

	printer.Print(r.Rows())
}

// String ...
func (r *Report) String() string {
	return fmt.Sprintf("Report{linker: %s, mode: %s, generated: %d, linked: %d}",
		r.Linker, r.AncientMode, r.Generated, r.Stats.Linked)
}
