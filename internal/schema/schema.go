// Package schema is the static registry of entity field metadata. It is the
// single source of truth consulted by the tabular list view and the record
// editor, so the two can never disagree on field set or type.
package schema

// FieldType enumerates the input kinds the editor can render.
type FieldType string

const (
	Text     FieldType = "text"
	Number   FieldType = "number"
	Date     FieldType = "date"
	Select   FieldType = "select"
	Textarea FieldType = "textarea"
	Checkbox FieldType = "checkbox"
	File     FieldType = "file"
)

// Option is one selectable value of a Select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Relation marks a field as a foreign key into another entity.
type Relation struct {
	Entity       string `json:"entity"`
	DisplayField string `json:"display_field"`
}

// Field describes one column/input of an entity. Key doubles as the JSON key
// and the database column name.
type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Options  []Option  `json:"options,omitempty"`
	Sortable bool      `json:"sortable,omitempty"`
	Required bool      `json:"required,omitempty"`
	Relation *Relation `json:"relation,omitempty"`
}

// Entity is the ordered field list for one data kind.
type Entity struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Field returns the descriptor for key, if the entity has it.
func (e Entity) Field(key string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Keys returns the field keys in schema order.
func (e Entity) Keys() []string {
	keys := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		keys[i] = f.Key
	}
	return keys
}

// FileFields returns the fields that carry uploaded object URLs.
func (e Entity) FileFields() []Field {
	var out []Field
	for _, f := range e.Fields {
		if f.Type == File {
			out = append(out, f)
		}
	}
	return out
}

func options(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}
