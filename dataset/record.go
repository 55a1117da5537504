// Package dataset loads labelled element records and splits them for training and testing.
package dataset

import "strings"

// Column names as they appear in the header row of a training file.
const (
	ControlID = "ControlId"
	Name      = "Name"
	CSSClass  = "CSSClass"
	Value     = "Value"
	Role      = "Role"
	Type      = "Type"
	Title     = "Title"
	Href      = "Href"
	Element   = "Element"
)

// FeatureColumns are the text attributes fed to the feature pipeline, in pipeline order.
// Changing this order invalidates any saved model.
var FeatureColumns = []string{ControlID, Name, CSSClass, Value, Role, Type, Title, Href}

// LabelColumn is the categorical target.
const LabelColumn = Element

// Record is one labelled UI element.
type Record struct {
	ControlID string
	Name      string
	CSSClass  string
	Value     string
	Role      string
	Type      string
	Title     string
	Href      string
	Element   string
}

// Get returns the value of the named column, or "" for an unknown column.
func (r Record) Get(column string) string {
	switch column {
	case ControlID:
		return r.ControlID
	case Name:
		return r.Name
	case CSSClass:
		return r.CSSClass
	case Value:
		return r.Value
	case Role:
		return r.Role
	case Type:
		return r.Type
	case Title:
		return r.Title
	case Href:
		return r.Href
	case Element:
		return r.Element
	}
	return ""
}

// Set assigns the value of the named column. It reports false for an unknown column.
func (r *Record) Set(column, value string) bool {
	switch column {
	case ControlID:
		r.ControlID = value
	case Name:
		r.Name = value
	case CSSClass:
		r.CSSClass = value
	case Value:
		r.Value = value
	case Role:
		r.Role = value
	case Type:
		r.Type = value
	case Title:
		r.Title = value
	case Href:
		r.Href = value
	case Element:
		r.Element = value
	default:
		return false
	}
	return true
}

// Key is a stable identity for the record's contents, used to address cached features.
func (r Record) Key() string {
	return strings.Join([]string{r.ControlID, r.Name, r.CSSClass, r.Value, r.Role, r.Type, r.Title, r.Href}, "\x1f")
}

// Schema describes the columns of a loaded file.
type Schema struct {
	Columns []string
	Label   string
}

// DefaultSchema is the schema every training file must satisfy.
func DefaultSchema() Schema {
	cols := make([]string, len(FeatureColumns)+1)
	copy(cols, FeatureColumns)
	cols[len(FeatureColumns)] = LabelColumn
	return Schema{Columns: cols, Label: LabelColumn}
}

// Dataset is an ordered collection of records.
type Dataset struct {
	Schema  Schema
	Records []Record
}

// Len is the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Labels returns the label column.
func (d Dataset) Labels() []string {
	l := make([]string, len(d.Records))
	for i, r := range d.Records {
		l[i] = r.Element
	}
	return l
}

// Column returns all values of a feature column.
func (d Dataset) Column(name string) []string {
	c := make([]string, len(d.Records))
	for i, r := range d.Records {
		c[i] = r.Get(name)
	}
	return c
}
