package dbexec

// Row is one flat result row keyed by column alias.
type Row map[string]any

// ScanRows drains a result set into rows keyed by the given aliases, which
// must match the query's select list in order. Byte slices are converted to
// strings so row values compare by content.
func ScanRows(rows Rows, aliases []string) ([]Row, error) {
	var results []Row

	for rows.Next() {
		values := make([]any, len(aliases))
		valuePtrs := make([]any, len(aliases))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(aliases))
		for i, alias := range aliases {
			row[alias] = convertValue(values[i])
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

func convertValue(val any) any {
	if b, ok := val.([]byte); ok {
		return string(b)
	}
	return val
}
