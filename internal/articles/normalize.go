package articles

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotASequence is returned when a raw payload is not a list of records at
// all. Problems with individual records never produce an error; they are
// counted in Batch.Skipped instead.
var ErrNotASequence = errors.New("payload is not a sequence of records")

// Batch is the result of normalizing a raw payload.
type Batch struct {
	Articles []Article `json:"articles"`
	Skipped  int       `json:"skipped"`
}

// envelope is the object form of a payload, as returned by the GNews search
// endpoint.
type envelope struct {
	Articles json.RawMessage `json:"articles"`
}

// DecodeRaw decodes a payload that is either a JSON array of records or an
// object carrying the array under "articles". Elements that are not objects,
// or whose fields have the wrong JSON types, are skipped and counted.
func DecodeRaw(data []byte) ([]RawArticle, int, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("decoding records: empty payload: %w", ErrNotASequence)
	}

	if data[0] == '{' {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, 0, fmt.Errorf("decoding envelope: %w", ErrNotASequence)
		}
		data = bytes.TrimSpace(env.Articles)
		if len(data) == 0 {
			return nil, 0, fmt.Errorf("decoding envelope: no articles field: %w", ErrNotASequence)
		}
		// GNews sends "articles": null for a query with no results.
		if bytes.Equal(data, []byte("null")) {
			return []RawArticle{}, 0, nil
		}
	} else if bytes.Equal(data, []byte("null")) {
		return nil, 0, fmt.Errorf("decoding records: null payload: %w", ErrNotASequence)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, 0, fmt.Errorf("decoding records: %w", ErrNotASequence)
	}

	records := make([]RawArticle, 0, len(elems))
	skipped := 0
	for _, elem := range elems {
		rec, ok := decodeRecord(elem)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// decodeRecord decodes a single element. JSON null fields are treated as
// absent.
func decodeRecord(elem json.RawMessage) (RawArticle, bool) {
	elem = bytes.TrimSpace(elem)
	if len(elem) == 0 || elem[0] != '{' {
		return RawArticle{}, false
	}
	var rec RawArticle
	if err := json.Unmarshal(elem, &rec); err != nil {
		return RawArticle{}, false
	}
	return rec, true
}

// FromRaw maps raw records to Articles. It never fails: absent text fields
// become empty strings and every article starts at MinInterestScore.
func FromRaw(records []RawArticle) []Article {
	out := make([]Article, len(records))
	for i, r := range records {
		out[i] = Article{
			Title:         r.Title,
			Description:   r.Description,
			URL:           r.URL,
			PublishedAt:   r.PublishedAt,
			Source:        r.Source.Name,
			Content:       r.Content,
			InterestScore: MinInterestScore,
		}
	}
	return out
}

// Normalize decodes data and maps it to Articles. On a structural error the
// returned Batch is empty.
func Normalize(data []byte) (Batch, error) {
	records, skipped, err := DecodeRaw(data)
	if err != nil {
		return Batch{Articles: []Article{}}, err
	}
	return Batch{Articles: FromRaw(records), Skipped: skipped}, nil
}
