package timeresolver

type nodeVisitor interface {
	visitIn(in in) error
	visitAt(at at) error
	visitOn(on on) error
}

type node interface {
	accept(v nodeVisitor) error
}

type period string

var (
	invalid period = period("")
	second  period = period("s")
	minute  period = period("m")
	hour    period = period("h")
	day     period = period("d")
	week    period = period("w")
	month   period = period("mo")
	year    period = period("y")
)

type inPart struct {
	p period
	n uint
}

type in struct {
	parts []inPart
}

func (in in) accept(v nodeVisitor) error {
	return v.visitIn(in)
}

type at struct {
	hour   uint
	minute uint
}

func (at at) accept(v nodeVisitor) error {
	return v.visitAt(at)
}

type onDay string

var (
	noDay          onDay = onDay("")
	today          onDay = onDay("today")
	tomorrow       onDay = onDay("tomorrow")
	afterTomorrow  onDay = onDay("after_tomorrow")
	onExplicitDate onDay = onDay("date")
)

type date struct {
	year  uint // zero when omitted
	month uint
	day   uint
}

type on struct {
	day  onDay
	date date
	at   *at
}

func (on on) accept(v nodeVisitor) error {
	return v.visitOn(on)
}
