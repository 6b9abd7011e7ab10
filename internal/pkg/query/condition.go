package query

import "fmt"

// Condition renders one WHERE fragment. paramIndex is the first free
// parameter number; the returned map must use names @p<paramIndex>...
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type comparison struct {
	field string
	op    string
	value interface{}
}

// Eq matches field = value.
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, name), map[string]interface{}{name: c.value}
}
