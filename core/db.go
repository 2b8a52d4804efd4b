package core

// DBFilter is an equality filter on a single column.
type DBFilter struct {
	Field string
	Value interface{}
}

// Eq returns a DBFilter matching rows where `field` equals `value`.
func Eq(field string, value interface{}) DBFilter {
	return DBFilter{Field: field, Value: value}
}

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// OrderBy returns an ascending DBOrdering on `field`, or a descending one when `field` starts with "-".
func OrderBy(field string) DBOrdering {
	if len(field) > 0 && field[0] == '-' {
		return DBOrdering{Field: field[1:]}
	}
	return DBOrdering{Field: field, Ascending: true}
}
