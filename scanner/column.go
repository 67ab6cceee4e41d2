package scanner

// Column describes one entry of a source schema.
type Column interface {
	Schema() string
	Table() string
	Name() string
	DatabaseTypeName() string
}

type staticColumn struct {
	schema   string
	table    string
	name     string
	typeName string
}

// NewColumn returns a Column with fixed attributes.
func NewColumn(schema, table, name, typeName string) Column {
	return &staticColumn{
		schema:   schema,
		table:    table,
		name:     name,
		typeName: typeName,
	}
}

func (c *staticColumn) Schema() string {
	return c.schema
}

func (c *staticColumn) Table() string {
	return c.table
}

func (c *staticColumn) Name() string {
	return c.name
}

func (c *staticColumn) DatabaseTypeName() string {
	return c.typeName
}
