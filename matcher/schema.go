package matcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Canonical logical field names for the two table kinds. Output columns and
// record conversion refer to these, never to raw spreadsheet headers.
const (
	FieldFoundationName        = "Foundation Name"
	FieldAreaOfFunding         = "Area of Funding"
	FieldAverageGrant          = "Average Grant"
	FieldCareerStageTargeted   = "Career Stage Targeted"
	FieldDeadlines             = "Deadlines/Restrictions"
	FieldInstitutionPreference = "Institution Preference"
	FieldWebsite               = "Website"

	FieldFacultyName = "Name"
	FieldDegree      = "Degree"
	FieldRank        = "Rank"
	FieldDivision    = "Division"
	FieldCareerStage = "Career Stage"
	FieldKeywords    = "Keywords"
)

// LogicalField names one canonical column plus the alias phrases a source
// table might use for its header. Keyword fields additionally carry the
// delimiter their free-text cells use.
type LogicalField struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases"`
	Delimiter string   `json:"delimiter,omitempty"`
}

// TableSchema lists the logical fields one table kind must provide, in the
// order they are resolved and reported.
type TableSchema struct {
	Kind   string         `json:"kind"`
	Fields []LogicalField `json:"fields"`
}

// Field looks up a logical field by canonical name.
func (s TableSchema) Field(name string) (LogicalField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return LogicalField{}, false
}

// KeywordDelimiter returns the delimiter configured for the named field,
// falling back to comma.
func (s TableSchema) KeywordDelimiter(name string) string {
	if f, ok := s.Field(name); ok && f.Delimiter != "" {
		return f.Delimiter
	}
	return ","
}

// DefaultFoundationSchema covers the foundation sheet's expected columns and
// the header variants seen in the wild.
func DefaultFoundationSchema() TableSchema {
	return TableSchema{
		Kind: "foundation",
		Fields: []LogicalField{
			{Name: FieldFoundationName, Aliases: []string{"foundation name", "foundation", "funder name", "funder", "organization name"}},
			{Name: FieldAreaOfFunding, Aliases: []string{"area of funding", "areas of funding", "funding area", "funding areas", "funding priorities", "focus areas", "program areas"}, Delimiter: ","},
			{Name: FieldAverageGrant, Aliases: []string{"average grant", "avg grant", "average award", "typical grant size", "grant amount"}},
			{Name: FieldCareerStageTargeted, Aliases: []string{"career stage targeted", "career stages targeted", "eligible career stage", "target career stage"}},
			{Name: FieldDeadlines, Aliases: []string{"deadlines restrictions", "deadlines", "deadline", "restrictions", "application deadline"}},
			{Name: FieldInstitutionPreference, Aliases: []string{"institution preference", "institution preferences", "preferred institutions", "institutional preference"}},
			{Name: FieldWebsite, Aliases: []string{"website", "web site", "url", "link", "homepage"}},
		},
	}
}

// DefaultFacultySchema covers the faculty sheet's expected columns.
func DefaultFacultySchema() TableSchema {
	return TableSchema{
		Kind: "faculty",
		Fields: []LogicalField{
			{Name: FieldFacultyName, Aliases: []string{"name", "faculty name", "full name", "faculty member", "pi name"}},
			{Name: FieldDegree, Aliases: []string{"degree", "degrees", "credentials"}},
			{Name: FieldRank, Aliases: []string{"rank", "academic rank", "title", "position"}},
			{Name: FieldDivision, Aliases: []string{"division", "department", "dept", "school", "unit"}},
			{Name: FieldCareerStage, Aliases: []string{"career stage", "career level", "stage"}},
			{Name: FieldKeywords, Aliases: []string{"keywords", "research keywords", "research interests", "key words", "research areas"}, Delimiter: ";"},
		},
	}
}

// SchemaFile bundles both table schemas so alias lists and delimiters can be
// tuned in one external JSON file instead of a recompile.
type SchemaFile struct {
	Foundation TableSchema `json:"foundation"`
	Faculty    TableSchema `json:"faculty"`
}

// DefaultSchemaFile returns the built-in schemas.
func DefaultSchemaFile() SchemaFile {
	return SchemaFile{
		Foundation: DefaultFoundationSchema(),
		Faculty:    DefaultFacultySchema(),
	}
}

// SaveSchemaFile persists a schema description as indented JSON.
func SaveSchemaFile(path string, schema SchemaFile) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}
	return nil
}

// LoadSchemaFile reads a schema description from disk. An empty path or a
// missing file yields the built-in defaults; a schema that omits one table
// kind keeps the default for that kind.
func LoadSchemaFile(path string) (SchemaFile, error) {
	out := DefaultSchemaFile()
	if path == "" {
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, fmt.Errorf("read schema file: %w", err)
	}
	var loaded SchemaFile
	if err := json.Unmarshal(data, &loaded); err != nil {
		return out, fmt.Errorf("decode schema file: %w", err)
	}
	if len(loaded.Foundation.Fields) > 0 {
		out.Foundation = loaded.Foundation
	}
	if len(loaded.Faculty.Fields) > 0 {
		out.Faculty = loaded.Faculty
	}
	if out.Foundation.Kind == "" {
		out.Foundation.Kind = "foundation"
	}
	if out.Faculty.Kind == "" {
		out.Faculty.Kind = "faculty"
	}
	return out, nil
}
