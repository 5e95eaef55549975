package vectorindex

// Operator is a comparison operator of a predicate clause. The string form
// matches the wire tokens understood by Chroma-style indexes.
type Operator int

const (
	OpEqual Operator = iota
	OpNotEqual
	OpGreaterThan
	OpGreaterEqual
	OpLessThan
	OpLessEqual
	OpIn
)

// String returns the wire token of the operator.
func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "$eq"
	case OpNotEqual:
		return "$ne"
	case OpGreaterThan:
		return "$gt"
	case OpGreaterEqual:
		return "$gte"
	case OpLessThan:
		return "$lt"
	case OpLessEqual:
		return "$lte"
	case OpIn:
		return "$in"
	default:
		return "$unknown"
	}
}

// Clause compares one metadata field against a value.
type Clause struct {
	Key      string
	Operator Operator
	Value    any
}

// Where is a conjunction of clauses. A nil Where matches every record.
type Where []Clause

// Eq matches records whose field equals v.
func Eq(key string, v any) Clause { return Clause{Key: key, Operator: OpEqual, Value: v} }

// Ne matches records whose field differs from v, including records that
// lack the field entirely.
func Ne(key string, v any) Clause { return Clause{Key: key, Operator: OpNotEqual, Value: v} }

// Gt matches records whose numeric field is greater than v.
func Gt(key string, v any) Clause { return Clause{Key: key, Operator: OpGreaterThan, Value: v} }

// Gte matches records whose numeric field is greater than or equal to v.
func Gte(key string, v any) Clause { return Clause{Key: key, Operator: OpGreaterEqual, Value: v} }

// Lt matches records whose numeric field is less than v.
func Lt(key string, v any) Clause { return Clause{Key: key, Operator: OpLessThan, Value: v} }

// Lte matches records whose numeric field is less than or equal to v.
func Lte(key string, v any) Clause { return Clause{Key: key, Operator: OpLessEqual, Value: v} }

// In matches records whose field equals one of the values.
func In(key string, values ...any) Clause {
	return Clause{Key: key, Operator: OpIn, Value: values}
}

// Matches checks if the document satisfies every clause.
func (w Where) Matches(doc Document) bool {
	for _, c := range w {
		if !c.Matches(doc) {
			return false
		}
	}
	return true
}

// Matches checks if the document satisfies the clause. A missing key behaves
// as a null value, so OpNotEqual matches records that lack the key.
func (c Clause) Matches(doc Document) bool {
	value := doc[c.Key]

	switch c.Operator {
	case OpEqual:
		return compareEqual(value, c.Value)
	case OpNotEqual:
		return !compareEqual(value, c.Value)
	case OpGreaterThan:
		return compareGreater(value, c.Value)
	case OpGreaterEqual:
		return compareGreater(value, c.Value) || compareEqual(value, c.Value)
	case OpLessThan:
		return compareLess(value, c.Value)
	case OpLessEqual:
		return compareLess(value, c.Value) || compareEqual(value, c.Value)
	case OpIn:
		return compareIn(value, c.Value)
	default:
		return false
	}
}

func compareEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if isNumber(a) && isNumber(b) {
		// Prefer exact int compare when possible.
		ai, aInt := asInt64(a)
		bi, bInt := asInt64(b)
		if aInt && bInt {
			return ai == bi
		}
		return asFloat64(a) == asFloat64(b)
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return false
	}
}

func compareGreater(a, b any) bool {
	if !isNumber(a) || !isNumber(b) {
		return false
	}
	return asFloat64(a) > asFloat64(b)
}

func compareLess(a, b any) bool {
	if !isNumber(a) || !isNumber(b) {
		return false
	}
	return asFloat64(a) < asFloat64(b)
}

func compareIn(a, b any) bool {
	items, ok := b.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if compareEqual(a, item) {
			return true
		}
	}
	return false
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
