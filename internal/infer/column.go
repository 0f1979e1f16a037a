package infer

import (
	"math"
	"strconv"
	"strings"
)

// Column is the per-source-column state machine. It is exclusively owned by
// its row-iteration driver: ProcessValue calls must observe row order, and
// FixUpRawValues must be called exactly once after the last value. Columns
// share no state, so distinct columns may be driven from distinct goroutines
// without coordination.
type Column struct {
	name     string
	dataType DataType

	// values holds one entry per ProcessValue call, index-aligned with the
	// input: nil for absent cells, a raw string while conversion is still
	// deferred, and a pgtype value once converted.
	values     []any
	pendingRaw int

	absent    map[string]struct{}
	maxLen    int
	threshold int

	pattern string
	datePat *datePattern
	timePat *timePattern
	convert convertFunc
}

// Option configures a Column at construction time.
type Option func(*Column)

// WithAbsentTokens appends sentinel strings to the default absent-token set
// ("none", "null", ""). Matching is case-insensitive.
func WithAbsentTokens(tokens ...string) Option {
	return func(c *Column) {
		for _, t := range tokens {
			c.absent[strings.ToLower(t)] = struct{}{}
		}
	}
}

// WithForceFormatThreshold overrides the number of ambiguous time samples
// after which the column commits to a 12-hour pattern.
func WithForceFormatThreshold(n int) Option {
	return func(c *Column) {
		if n > 0 {
			c.threshold = n
		}
	}
}

// NewColumn creates an empty column. The name is a diagnostic label only and
// may be empty when the source has no header row.
func NewColumn(name string, opts ...Option) *Column {
	c := &Column{
		name:      name,
		absent:    make(map[string]struct{}, len(defaultAbsentTokens)),
		threshold: ForceFormatThreshold,
	}
	for _, t := range defaultAbsentTokens {
		c.absent[t] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessValue feeds one raw cell value into the column. Absent values are
// appended as nil and never influence inference. The first concrete value
// commits the column's data type; temporal columns buffer raw values until
// the parse pattern is pinned.
func (c *Column) ProcessValue(raw string) error {
	value, absent := c.normalize(raw)
	if absent {
		c.values = append(c.values, nil)
		return nil
	}

	if c.dataType == Unknown {
		c.setDataType(value)
	}

	value = c.canonicalize(value)

	if c.convert == nil && c.dataType.Temporal() {
		c.narrow(value)
	}

	if c.convert == nil {
		c.values = append(c.values, value)
		c.pendingRaw++
		return nil
	}

	converted, err := c.convert(value)
	if err != nil {
		return &ConversionError{
			Column:  c.name,
			Value:   value,
			Type:    c.dataType,
			Pattern: c.pattern,
			Err:     err,
		}
	}
	c.values = append(c.values, converted)
	return nil
}

// FixUpRawValues converts every value that was buffered before the parse
// pattern stabilized, using the same conversion routine the immediate path
// uses. It fails if the column never resolved: there is no safe best guess
// for a column whose format could not be inferred from its own data.
func (c *Column) FixUpRawValues() error {
	if c.pendingRaw == 0 {
		return nil
	}
	if c.convert == nil {
		return &UnresolvedFormatError{Column: c.name, Type: c.dataType}
	}

	for i, v := range c.values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		converted, err := c.convert(raw)
		if err != nil {
			return &ConversionError{
				Column:  c.name,
				Value:   raw,
				Type:    c.dataType,
				Pattern: c.pattern,
				Err:     err,
			}
		}
		c.values[i] = converted
		c.pendingRaw--
		if c.pendingRaw == 0 {
			break
		}
	}
	return nil
}

// normalize trims the value and maps sentinel tokens to absent. Non-absent
// values update the running max character length.
func (c *Column) normalize(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if _, ok := c.absent[strings.ToLower(value)]; ok {
		return "", true
	}
	if len(value) > c.maxLen {
		c.maxLen = len(value)
	}
	return value, false
}

// setDataType derives the column type from its first concrete value.
// Integer, Float, and String resolve immediately; temporal types start the
// pattern-narrowing state.
func (c *Column) setDataType(value string) {
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		c.dataType = Integer
		c.convert = converterFor(Integer, "")
		return
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && math.Mod(f, 1) != 0 {
		c.dataType = Float
		c.convert = converterFor(Float, "")
		return
	}

	hasDate := hasDateShape(value)
	hasTime := hasTimeShape(value)
	switch {
	case hasDate && hasTime:
		c.dataType = DateTime
	case hasDate:
		c.dataType = Date
	case hasTime:
		c.dataType = Time
	default:
		c.dataType = String
		c.convert = converterFor(String, "")
		return
	}

	if c.dataType == Date || c.dataType == DateTime {
		c.datePat = &datePattern{}
	}
	if c.dataType == Time || c.dataType == DateTime {
		c.timePat = &timePattern{threshold: c.threshold}
	}
}

// canonicalize unifies separator characters per the committed data type so
// that both pattern narrowing and conversion see a single token shape.
func (c *Column) canonicalize(value string) string {
	switch c.dataType {
	case Date:
		return canonicalizeDate(value)
	case Time, DateTime:
		fields := strings.Fields(value)
		if c.dataType == DateTime {
			fields[0] = canonicalizeDate(fields[0])
			if len(fields) > 1 {
				fields[1] = canonicalizeTime(fields[1])
			}
		} else {
			fields[0] = canonicalizeTime(fields[0])
		}
		if m := meridiem(fields[len(fields)-1]); m != "" {
			fields[len(fields)-1] = m
		}
		return strings.Join(fields, " ")
	}
	return value
}

// narrow feeds the canonical value's date and time tokens into the pattern
// algorithms and commits the conversion function once every required part of
// the pattern is pinned.
func (c *Column) narrow(value string) {
	dateTok, timeTok, marker := splitTemporal(value, c.dataType)

	if c.datePat != nil && dateTok != "" {
		c.datePat.observe(dateTok)
	}
	if c.timePat != nil && timeTok != "" {
		c.timePat.observe(timeTok, marker)
	}

	switch c.dataType {
	case Date:
		if c.datePat.format != "" {
			c.commit(c.datePat.format)
		}
	case Time:
		if c.timePat.format != "" {
			c.commit(c.timePat.format)
		}
	case DateTime:
		if c.datePat.format != "" && c.timePat.format != "" {
			c.commit(c.datePat.format + " " + c.timePat.format)
		}
	}
}

func (c *Column) commit(pattern string) {
	c.pattern = pattern
	c.convert = converterFor(c.dataType, pattern)
}

// splitTemporal splits a canonical temporal value into its date token, time
// token, and AM/PM marker flag, according to the column's data type.
func splitTemporal(value string, dt DataType) (dateTok, timeTok string, marker bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return "", "", false
	}
	switch dt {
	case Date:
		dateTok = fields[0]
	case Time:
		timeTok = fields[0]
		marker = len(fields) > 1 && meridiem(fields[1]) != ""
	case DateTime:
		dateTok = fields[0]
		if len(fields) > 1 {
			timeTok = fields[1]
		}
		marker = len(fields) > 2 && meridiem(fields[2]) != ""
	}
	return dateTok, timeTok, marker
}

// Name returns the column's diagnostic label.
func (c *Column) Name() string { return c.name }

// DataType returns the committed type, or Unknown if no concrete value has
// been seen yet.
func (c *Column) DataType() DataType { return c.dataType }

// Pattern returns the resolved parse pattern for temporal columns, or "".
func (c *Column) Pattern() string { return c.pattern }

// Resolved reports whether a conversion function is committed.
func (c *Column) Resolved() bool { return c.convert != nil }

// PendingRaw returns the number of buffered, not-yet-converted raw values.
func (c *Column) PendingRaw() int { return c.pendingRaw }

// MaxCharLen returns the longest non-absent value seen, in bytes.
func (c *Column) MaxCharLen() int { return c.maxLen }

// Len returns the number of values processed, including absent entries.
func (c *Column) Len() int { return len(c.values) }

// Values returns the column's output sequence: nil for absent cells, pgtype
// values once converted, raw strings for entries still awaiting fix-up. The
// slice is owned by the column and must not be mutated.
func (c *Column) Values() []any { return c.values }
