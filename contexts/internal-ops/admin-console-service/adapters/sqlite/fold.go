package sqliteadapter

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// foldFunction lowercases text with Unicode rules. The built-in lower() only
// folds ASCII letters.
const foldFunction = "komunumo_fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunction, 1, fold)
}

func fold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return value, nil
	}
}
