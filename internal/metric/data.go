package metric

// Data is the per-observation record produced by Metric.Event and stored in
// the MetricCache. MetricFormat carries the owning Metric's precomputed
// format tag: the metric type name, with a "+ts" suffix when samples carry
// a timestamp (for example "gauge+ts"). It does not hold the "name{"
// exposition prefix, and the renderer does not read it; each sample line
// is built from Id, Labels and Value at scrape time.
type Data struct {
	Id                Id
	Labels            *Labels
	Value             string
	Help              string
	MetricType        Type
	MetricUnit        Unit
	TimestampPolicy   Timestamp
	MetricFormat      string
	ObservedValueType ValueType
	Timestamp         int64
}

// NewData returns a Data with an initialized, empty Labels ready for reuse
// across observations.
func NewData() *Data {
	return &Data{Labels: NewLabels()}
}

// Reset clears the per-observation fields while preserving the Labels'
// backing storage, so a Metric's scratch Data can be reused for its next
// Event without allocating.
func (d *Data) Reset() {
	d.Id = Id{}
	d.Value = ""
	d.Help = ""
	d.MetricType = TypeGauge
	d.MetricUnit = UnitNone
	d.TimestampPolicy = TimestampOn
	d.MetricFormat = ""
	d.ObservedValueType = ValueUnknown
	d.Timestamp = 0
	d.Labels.Clear()
}

// Clone deep-copies d, including its Labels, for the cache to take
// ownership of on insert while leaving the handler's scratch Data free for
// reuse.
func (d *Data) Clone() *Data {
	clone := *d
	clone.Labels = d.Labels.Clone()
	return &clone
}

// Vector is a reusable, capacity-preserving slice of *Data, handed from
// Handler.Event down into Metric.Event and finally to MetricCache.Add.
type Vector struct {
	items []*Data
}

// Clear empties the vector while preserving its backing array.
func (v *Vector) Clear() {
	v.items = v.items[:0]
}

// Reserve ensures the vector has capacity for n additional entries.
func (v *Vector) Reserve(n int) {
	if cap(v.items)-len(v.items) >= n {
		return
	}
	grown := make([]*Data, len(v.items), len(v.items)+n)
	copy(grown, v.items)
	v.items = grown
}

// Append adds d to the vector, taking ownership of the pointer.
func (v *Vector) Append(d *Data) {
	v.items = append(v.items, d)
}

// Items exposes the current contents for iteration; callers must not
// retain the slice past the next Clear.
func (v *Vector) Items() []*Data {
	return v.items
}
