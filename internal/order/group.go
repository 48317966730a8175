package order

import (
	"fmt"

	"github.com/ginjaninja78/packing-slips/internal/types"
)

// KeyColumn is the column rows are grouped by.
const KeyColumn = "Order_number"

// MissingColumnError reports a column the aggregator needs but the sheet
// does not have.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found", e.Column)
}

// Group is every row that shares one order number, in source order.
type Group struct {
	Key  string
	Rows []types.Row
}

// GroupRows splits the table into order groups.
//
// Groups are returned in order of first occurrence of their key. The key is
// the exact cell text, so "1001" and "1001 " are different orders. Rows with
// a blank or NaN order number belong to no order and are left out.
func GroupRows(table *types.Table) ([]Group, error) {
	if !table.HasColumn(KeyColumn) {
		return nil, &MissingColumnError{Column: KeyColumn}
	}

	index := make(map[string]int)
	var groups []Group

	for _, row := range table.Rows {
		key := row[KeyColumn]
		if isMissing(key) {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups, nil
}

// GroupedRows returns the number of rows held by groups.
func GroupedRows(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Rows)
	}
	return n
}
