package feature

// LabelEncoder maps categorical label values to contiguous integer keys and back.
// Keys are assigned in order of first occurrence.
type LabelEncoder struct {
	Values []string
	Index  map[string]int
}

// NewLabelEncoder creates an empty encoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{Index: make(map[string]int)}
}

// Fit replaces the mapping with one learned from labels.
func (l *LabelEncoder) Fit(labels []string) {
	l.Values = nil
	l.Index = make(map[string]int)
	for _, v := range labels {
		if _, ok := l.Index[v]; !ok {
			l.Index[v] = len(l.Values)
			l.Values = append(l.Values, v)
		}
	}
}

// Encode returns the key of v, and false if v was not seen during Fit.
func (l *LabelEncoder) Encode(v string) (int, bool) {
	k, ok := l.Index[v]
	return k, ok
}

// Decode returns the value of key k.
func (l *LabelEncoder) Decode(k int) (string, bool) {
	if k < 0 || k >= len(l.Values) {
		return "", false
	}
	return l.Values[k], true
}

// Len is the number of distinct labels.
func (l *LabelEncoder) Len() int {
	return len(l.Values)
}
