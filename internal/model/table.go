package model

// Table is an ordered set of records sharing a column layout. Records may
// lack keys for some columns; those cells are null.
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// HasColumn reports whether name is one of the table's columns.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to the column layout if it is not already there.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds records to the end of the table, extending the column layout
// with any fields it does not yet have. New columns follow the order records
// are appended in; a record's own new fields are added in sorted order, since
// a Record carries no field order.
func (t *Table) Append(recs ...Record) {
	for _, r := range recs {
		for _, f := range r.Fields() {
			t.AddColumn(f)
		}
		t.Records = append(t.Records, r)
	}
}

// Where returns the records for which keep returns true, in table order.
func (t Table) Where(keep func(Record) bool) []Record {
	var out []Record
	for _, r := range t.Records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// IDs returns every non-null record_id in table order.
func (t Table) IDs() []string {
	var ids []string
	for _, r := range t.Records {
		if v := r.ID(); v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	c := Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, len(t.Records)),
	}
	for i, r := range t.Records {
		c.Records[i] = r.Clone()
	}
	return c
}
