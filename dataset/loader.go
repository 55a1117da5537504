package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrSchemaMismatch is returned when a file's header or rows do not fit the expected schema.
var ErrSchemaMismatch = errors.New("schema mismatch")

const byteOrderMark = "\ufeff"

// Load reads comma-separated records with a header row. Columns are matched to the schema by
// name, case-insensitively, so their order in the file is not significant. Extra columns are ignored.
func Load(r io.Reader) (Dataset, error) {
	return load(r, DefaultSchema())
}

// LoadUnlabelled is Load for files without an Element column, such as elements that are yet
// to be classified. If the column is present it is still read.
func LoadUnlabelled(r io.Reader) (Dataset, error) {
	return load(r, Schema{Columns: FeatureColumns})
}

func load(r io.Reader, schema Schema) (Dataset, error) {

	reader := csv.NewReader(r)
	reader.Comma = ','

	header, err := reader.Read()
	if err == io.EOF {
		return Dataset{}, errors.Wrap(ErrSchemaMismatch, "missing header row")
	}
	if err != nil {
		return Dataset{}, parseError(err)
	}
	// The header fixes the number of fields for every following row.
	reader.FieldsPerRecord = len(header)

	index, err := columnIndex(header, schema.Columns)
	if err != nil {
		return Dataset{}, err
	}
	if schema.Label == "" {
		if i, ok := find(header, LabelColumn); ok {
			index[LabelColumn] = i
		}
	}

	d := Dataset{Schema: schema}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, parseError(err)
		}
		var rec Record
		for column, i := range index {
			rec.Set(column, row[i])
		}
		d.Records = append(d.Records, rec)
	}
	return d, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (Dataset, error) {
	return loadFile(path, Load)
}

// LoadUnlabelledFile opens path and loads it with LoadUnlabelled.
func LoadUnlabelledFile(path string) (Dataset, error) {
	return loadFile(path, LoadUnlabelled)
}

func loadFile(path string, load func(io.Reader) (Dataset, error)) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	d, err := load(f)
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "loading %s", path)
	}
	return d, nil
}

// find is the position of the first header field naming column.
func find(header []string, column string) (int, bool) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, byteOrderMark)), column) {
			return i, true
		}
	}
	return 0, false
}

func columnIndex(header, columns []string) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	var missing []string
	for _, column := range columns {
		if i, ok := find(header, column); ok {
			index[column] = i
		} else {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrSchemaMismatch, "header is missing columns %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func parseError(err error) error {
	if pe, ok := err.(*csv.ParseError); ok {
		return errors.Wrapf(ErrSchemaMismatch, "line %d: %v", pe.Line, pe.Err)
	}
	return err
}
