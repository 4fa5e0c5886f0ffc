// Package parser wraps the MySQL grammar of github.com/xwb1989/sqlparser
// for the shell and extracts plain values from INSERT statements.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// Statement is a parsed SQL statement.
type Statement = sqlparser.Statement

// Parse parses every ';'-separated statement in sql. A syntax error in any
// statement fails the whole input and no statements are returned. Empty
// input yields no statements and no error.
func Parse(sql string) ([]Statement, error) {
	tokens := sqlparser.NewStringTokenizer(sql)
	var stmts []Statement
	for {
		stmt, err := sqlparser.ParseNext(tokens)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", sql, err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// Kind names the variant of stmt.
func Kind(stmt Statement) string {
	switch s := stmt.(type) {
	case *sqlparser.Select, *sqlparser.ParenSelect:
		return "select"
	case *sqlparser.Union:
		return "union"
	case *sqlparser.Insert:
		return s.Action
	case *sqlparser.Update:
		return "update"
	case *sqlparser.Delete:
		return "delete"
	case *sqlparser.DDL:
		return s.Action
	case *sqlparser.DBDDL:
		return s.Action + " database"
	case *sqlparser.Show:
		return "show"
	case *sqlparser.Set:
		return "set"
	case *sqlparser.Use:
		return "use"
	case *sqlparser.Begin:
		return "begin"
	case *sqlparser.Commit:
		return "commit"
	case *sqlparser.Rollback:
		return "rollback"
	default:
		return "other"
	}
}

// TableOf returns the table a statement targets, or "" when it has none or
// the target is not a plain table.
func TableOf(stmt Statement) string {
	switch s := stmt.(type) {
	case *sqlparser.Insert:
		return tableName(s.Table)
	case *sqlparser.Update:
		return firstTable(s.TableExprs)
	case *sqlparser.Delete:
		return firstTable(s.TableExprs)
	case *sqlparser.Select:
		return firstTable(s.From)
	case *sqlparser.DDL:
		if s.Table.IsEmpty() {
			return tableName(s.NewName)
		}
		return tableName(s.Table)
	default:
		return ""
	}
}

// String renders stmt back to canonical SQL.
func String(stmt Statement) string {
	return sqlparser.String(stmt)
}

func firstTable(exprs sqlparser.TableExprs) string {
	if len(exprs) == 0 {
		return ""
	}
	ate, ok := exprs[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return ""
	}
	tn, ok := ate.Expr.(sqlparser.TableName)
	if !ok {
		return ""
	}
	return tableName(tn)
}

func tableName(tn sqlparser.TableName) string {
	if tn.Qualifier.IsEmpty() {
		return tn.Name.String()
	}
	return strings.Join([]string{tn.Qualifier.String(), tn.Name.String()}, ".")
}
