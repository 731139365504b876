package postgres

import (
	"strconv"
	"strings"
)

// setBuilder accumulates "col = $n" assignments for partial updates.
type setBuilder struct {
	cols []string
	args []any
}

func (b *setBuilder) add(col string, v any) {
	b.args = append(b.args, v)
	b.cols = append(b.cols, col+" = $"+strconv.Itoa(len(b.args)))
}

func (b *setBuilder) empty() bool { return len(b.cols) == 0 }

// build returns the SET clause and the placeholder index reserved for the row id.
func (b *setBuilder) build(id any) (string, []any, string) {
	args := append(b.args, id)
	return strings.Join(b.cols, ", "), args, "$" + strconv.Itoa(len(args))
}
