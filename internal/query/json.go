package query

import (
	"encoding/json"
	"io"
	"strconv"
)

// score formats as exactly 8 digits after the decimal point, per spec §6.
type score float64

func (s score) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(s), 'f', 8, 64)), nil
}

type resultJSON struct {
	Where string `json:"where"`
	Count int    `json:"count"`
	Score score  `json:"score"`
}

// WriteJSON emits the canonical-query -> results map as pretty JSON:
// tab indentation, newline separators, keys sorted lexicographically.
func (p *Parser) WriteJSON(w io.Writer) error {
	p.mu.Lock()
	doc := make(map[string][]resultJSON, len(p.results))
	for canonical, results := range p.results {
		out := make([]resultJSON, len(results))
		for i, r := range results {
			out[i] = resultJSON{Where: r.Where, Count: r.Matches, Score: score(r.Score)}
		}
		doc[canonical] = out
	}
	p.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(doc)
}
