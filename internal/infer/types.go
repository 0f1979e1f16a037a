package infer

// DataType is the inferred type of a column. It is set from the first
// non-absent value the column sees and is immutable afterwards.
type DataType int

const (
	Unknown DataType = iota
	Integer
	Float
	String
	Date
	Time
	DateTime
)

var dataTypeNames = map[DataType]string{
	Unknown:  "unknown",
	Integer:  "integer",
	Float:    "float",
	String:   "varchar",
	Date:     "date",
	Time:     "time",
	DateTime: "datetime",
}

func (d DataType) String() string {
	if name, ok := dataTypeNames[d]; ok {
		return name
	}
	return "unknown"
}

// Temporal reports whether values of this type need a parse pattern before
// they can be converted.
func (d DataType) Temporal() bool {
	return d == Date || d == Time || d == DateTime
}
