package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SearchRequest is a search over vector fields.
//
//	{"query": {"range": {"v": {"gte": "0,0", "lte": "1,1"}}}, "from": 0, "size": 10}
type SearchRequest struct {
	Query         QueryClause `json:"query"`
	From          int         `json:"from,omitempty"`
	Size          int         `json:"size,omitempty"`
	IncludeSource *bool       `json:"include_source,omitempty"`
}

// QueryClause holds exactly one query kind.
type QueryClause struct {
	Range  map[string]*RangeClause `json:"range,omitempty"`
	Term   map[string]Text         `json:"term,omitempty"`
	Exists *ExistsClause           `json:"exists,omitempty"`
}

// ExistsClause names the field that must be present.
type ExistsClause struct {
	Field string `json:"field"`
}

// RangeClause accepts both gte/gt/lte/lt and from/to/include_lower/include_upper.
// Missing bounds are open; include flags default to true.
type RangeClause struct {
	GTE          *Text `json:"gte,omitempty"`
	GT           *Text `json:"gt,omitempty"`
	LTE          *Text `json:"lte,omitempty"`
	LT           *Text `json:"lt,omitempty"`
	From         *Text `json:"from,omitempty"`
	To           *Text `json:"to,omitempty"`
	IncludeLower *bool `json:"include_lower,omitempty"`
	IncludeUpper *bool `json:"include_upper,omitempty"`
}

// Text is a JSON string, or a JSON number kept as its literal text.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", string(data))
	}
	*t = Text(n.String())
	return nil
}

// Ptr returns t as a *string; nil stays nil.
func (t *Text) Ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// Bounds resolves the clause into lower/upper text and inclusivity.
func (r *RangeClause) Bounds() (lower, upper *string, includeLower, includeUpper bool, err error) {
	includeLower, includeUpper = true, true
	if r.IncludeLower != nil {
		includeLower = *r.IncludeLower
	}
	if r.IncludeUpper != nil {
		includeUpper = *r.IncludeUpper
	}

	set := 0
	for _, b := range []*Text{r.GTE, r.GT, r.From} {
		if b != nil {
			set++
		}
	}
	if set > 1 {
		return nil, nil, false, false, fmt.Errorf("range: only one of gte, gt, from may be set")
	}
	set = 0
	for _, b := range []*Text{r.LTE, r.LT, r.To} {
		if b != nil {
			set++
		}
	}
	if set > 1 {
		return nil, nil, false, false, fmt.Errorf("range: only one of lte, lt, to may be set")
	}

	switch {
	case r.GTE != nil:
		lower, includeLower = r.GTE.Ptr(), true
	case r.GT != nil:
		lower, includeLower = r.GT.Ptr(), false
	case r.From != nil:
		lower = r.From.Ptr()
	}
	switch {
	case r.LTE != nil:
		upper, includeUpper = r.LTE.Ptr(), true
	case r.LT != nil:
		upper, includeUpper = r.LT.Ptr(), false
	case r.To != nil:
		upper = r.To.Ptr()
	}
	return lower, upper, includeLower, includeUpper, nil
}

// Validate ensures exactly one query kind targeting exactly one field is set,
// and normalizes from/size. maxSize caps size; defaultSize replaces a zero size.
func (q *SearchRequest) Validate(defaultSize, maxSize int) error {
	kinds := 0
	if len(q.Query.Range) > 0 {
		kinds++
		if len(q.Query.Range) != 1 {
			return fmt.Errorf("range query must target exactly one field")
		}
		for name, clause := range q.Query.Range {
			if name == "" || clause == nil {
				return fmt.Errorf("range query needs a field and a clause")
			}
		}
	}
	if len(q.Query.Term) > 0 {
		kinds++
		if len(q.Query.Term) != 1 {
			return fmt.Errorf("term query must target exactly one field")
		}
	}
	if q.Query.Exists != nil {
		kinds++
		if q.Query.Exists.Field == "" {
			return fmt.Errorf("exists query needs a field")
		}
	}
	if kinds != 1 {
		return fmt.Errorf("query must contain exactly one of range, term, exists")
	}
	if q.From < 0 {
		return fmt.Errorf("from cannot be negative")
	}
	if q.Size <= 0 {
		q.Size = defaultSize
	}
	if q.Size > maxSize {
		q.Size = maxSize
	}
	return nil
}

// WantSource reports whether hits should carry their document source.
func (q *SearchRequest) WantSource() bool {
	return q.IncludeSource == nil || *q.IncludeSource
}
