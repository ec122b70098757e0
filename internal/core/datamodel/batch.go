package datamodel

// MaxBindParams is the bind variable limit of sqlite, the lower of the two
// supported databases (postgres allows 65535).
const MaxBindParams = 32766

// InsertChunk caps a requested insert batch so that rows of the given column
// count never exceed MaxBindParams in one statement.
func InsertChunk(requested, columns int) int {
	if columns < 1 {
		columns = 1
	}
	limit := MaxBindParams / columns
	if requested < 1 || requested > limit {
		return limit
	}
	return requested
}
