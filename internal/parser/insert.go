package parser

import (
	"errors"

	"github.com/xwb1989/sqlparser"
)

// ErrNotInsert is returned by NewInsert for any statement that is not an
// INSERT or REPLACE.
var ErrNotInsert = errors.New("cannot parse insert query")

// NullText is the string a NULL literal is flattened to.
const NullText = "Null"

// Insert is an INSERT statement flattened to strings.
type Insert struct {
	Action  string // "insert" or "replace"
	Table   string
	Columns []string
	Values  [][]string
}

// NewInsert flattens stmt. Only a VALUES source produces rows; INSERT ...
// SELECT yields an Insert without Values. Within a row, literal numbers,
// booleans, strings, NULL and unqualified identifiers are kept; any other
// expression is dropped, so rows may be shorter than Columns.
func NewInsert(stmt Statement) (*Insert, error) {
	ins, ok := stmt.(*sqlparser.Insert)
	if !ok {
		return nil, ErrNotInsert
	}
	out := &Insert{
		Action:  ins.Action,
		Table:   tableName(ins.Table),
		Columns: make([]string, 0, len(ins.Columns)),
		Values:  valuesOf(ins.Rows),
	}
	for _, c := range ins.Columns {
		out.Columns = append(out.Columns, c.String())
	}
	return out, nil
}

func valuesOf(rows sqlparser.InsertRows) [][]string {
	values, ok := rows.(sqlparser.Values)
	if !ok {
		return nil
	}
	all := make([][]string, 0, len(values))
	for _, tuple := range values {
		set := make([]string, 0, len(tuple))
		for _, e := range tuple {
			if s, ok := exprString(e); ok {
				set = append(set, s)
			}
		}
		all = append(all, set)
	}
	return all
}

func exprString(e sqlparser.Expr) (string, bool) {
	switch v := e.(type) {
	case *sqlparser.SQLVal:
		switch v.Type {
		case sqlparser.IntVal, sqlparser.FloatVal, sqlparser.StrVal:
			return string(v.Val), true
		}
	case sqlparser.BoolVal:
		if v {
			return "true", true
		}
		return "false", true
	case *sqlparser.NullVal:
		return NullText, true
	case *sqlparser.ColName:
		if v.Qualifier.IsEmpty() {
			return v.Name.String(), true
		}
	case *sqlparser.UnaryExpr:
		// The grammar folds "-1" and "+1" into the literal but keeps a sign
		// in front of a float as a unary expression.
		num, ok := v.Expr.(*sqlparser.SQLVal)
		if !ok || (num.Type != sqlparser.IntVal && num.Type != sqlparser.FloatVal) {
			return "", false
		}
		switch v.Operator {
		case sqlparser.UMinusStr:
			return "-" + string(num.Val), true
		case sqlparser.UPlusStr:
			return string(num.Val), true
		}
	}
	return "", false
}
