// ABOUTME: Positional column schemas for spreadsheet rows
// ABOUTME: Maps column index to field name per entity and validates configured layouts
package mapper

import (
	"fmt"
	"strings"

	"github.com/harperreed/stoneledger/normalize"
)

// Row is one spreadsheet row: ordered, untyped cell values.
type Row = []any

// Entity names a kind of record read from a sheet.
type Entity string

const (
	EntityOrders   Entity = "orders"
	EntityContacts Entity = "contacts"
	EntityNotes    Entity = "notes"
)

// Entities lists every entity in payload order.
var Entities = []Entity{EntityOrders, EntityContacts, EntityNotes}

// Field names usable in schemas.
const (
	FieldID          = "id"
	FieldCompanyName = "companyName"

	FieldValue          = "value"
	FieldOrderName      = "orderName"
	FieldLink           = "link"
	FieldStartDate      = "startDate"
	FieldDueDate        = "dueDate"
	FieldTurnaroundDays = "turnaroundDays"

	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldFullName  = "fullName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldPhoneRaw  = "phoneRaw"

	FieldContact = "contact"
	FieldDate    = "date"
	FieldAuthor  = "author"
	FieldContent = "content"
)

// skip marks a column that is present in the sheet but not read.
const skip = "-"

var entityFields = map[Entity][]string{
	EntityOrders: {
		FieldCompanyName, FieldValue, FieldOrderName, FieldLink,
		FieldStartDate, FieldDueDate, FieldTurnaroundDays,
	},
	EntityContacts: {
		FieldID, FieldCompanyName, FieldFirstName, FieldLastName, FieldFullName,
		FieldEmail, FieldPhone, FieldPhoneRaw,
	},
	EntityNotes: {
		FieldID, FieldCompanyName, FieldContact, FieldDate, FieldAuthor, FieldContent,
	},
}

// Default layouts of the production sheets.
var (
	// Orders tab: A company, B value, C order id, D ClickUp link, E start, F due.
	DefaultOrderColumns = []string{
		FieldCompanyName, FieldValue, FieldOrderName, FieldLink, FieldStartDate, FieldDueDate,
	}
	// Final List tab: A email, B phone, C company, D country (unused), E first, F last, G full name.
	DefaultContactColumns = []string{
		FieldEmail, FieldPhone, FieldCompanyName, skip, FieldFirstName, FieldLastName, FieldFullName,
	}
	DefaultNoteColumns = []string{
		FieldID, FieldCompanyName, FieldContact, FieldDate, FieldAuthor, FieldContent,
	}
)

// DefaultColumns returns the default layout for an entity.
func DefaultColumns(entity Entity) []string {
	switch entity {
	case EntityOrders:
		return DefaultOrderColumns
	case EntityContacts:
		return DefaultContactColumns
	case EntityNotes:
		return DefaultNoteColumns
	}
	return nil
}

// Schema maps column positions to field names for one entity.
type Schema struct {
	entity  Entity
	columns []string
	index   map[string]int
}

// ParseSchema validates a column layout. Empty names and "-" skip a column.
// Every schema must map the company column.
func ParseSchema(entity Entity, columns []string) (Schema, error) {
	allowed, ok := entityFields[entity]
	if !ok {
		return Schema{}, fmt.Errorf("unknown entity %q", entity)
	}

	s := Schema{
		entity:  entity,
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, raw := range columns {
		name := strings.TrimSpace(raw)
		if name == "" || name == skip {
			s.columns[i] = skip
			continue
		}
		if !contains(allowed, name) {
			return Schema{}, fmt.Errorf("%s column %d: unknown field %q (allowed: %s)",
				entity, i, name, strings.Join(allowed, ", "))
		}
		if prev, dup := s.index[name]; dup {
			return Schema{}, fmt.Errorf("%s column %d: field %q already mapped to column %d", entity, i, name, prev)
		}
		s.columns[i] = name
		s.index[name] = i
	}

	if _, ok := s.index[FieldCompanyName]; !ok {
		return Schema{}, fmt.Errorf("%s schema must map %q", entity, FieldCompanyName)
	}
	if entity == EntityNotes && !s.Has(FieldContent) {
		return Schema{}, fmt.Errorf("%s schema must map %q", entity, FieldContent)
	}

	return s, nil
}

// MustSchema is ParseSchema for layouts known to be valid.
func MustSchema(entity Entity, columns []string) Schema {
	s, err := ParseSchema(entity, columns)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Schema) Entity() Entity { return s.entity }

// Columns returns the layout with skipped columns as "-".
func (s Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Has reports whether field is mapped to a column.
func (s Schema) Has(field string) bool {
	_, ok := s.index[field]
	return ok
}

// Cell returns the raw value for field, or nil when the field is unmapped
// or the row is too short.
func (s Schema) Cell(row Row, field string) any {
	i, ok := s.index[field]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

// Text returns the trimmed string value for field.
func (s Schema) Text(row Row, field string) string {
	return normalize.Text(s.Cell(row, field))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
