package lsg

import (
	"encoding/json"
	"io"
	"sort"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
	"github.com/samber/lo"
)

const (
	DefaultType     = "lsg"
	TypeCorporation = "corporation"
)

type Head struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Entry is the search view of an LSG, small enough to be shipped to clients as a whole.
type Entry struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	NameML          string    `json:"name_ml"`
	Type            string    `json:"type"`
	District        string    `json:"district"`
	Centroid        gps.Point `json:"centroid"`
	Head            *Head     `json:"head,omitempty"`
	Secretary       string    `json:"secretary,omitempty"`
	Website         string    `json:"website,omitempty"`
	Wikidata        string    `json:"wikidata,omitempty"`
	MLAConstituency string    `json:"mla_constituency,omitempty"`
	MPConstituency  string    `json:"mp_constituency,omitempty"`
}

// NewEntry builds the entry of a feature, id is the 1-based position of the feature.
// Returns false for features without a usable geometry.
func NewEntry(id int, f Feature) (Entry, bool) {
	centroid, ok := Centroid(f.Geometry)
	if !ok {
		return Entry{}, false
	}
	props := f.Properties
	e := Entry{
		ID:              id,
		Name:            props.Name,
		NameML:          props.NameML,
		Type:            props.Type,
		District:        props.District,
		Centroid:        centroid,
		Website:         props.Website,
		Wikidata:        props.Wikidata,
		MLAConstituency: props.MLAConstituency,
		MPConstituency:  props.MPConstituency,
	}
	if e.Type == "" {
		e.Type = DefaultType
	}
	if o := props.Officials; o != nil {
		if o.President != nil && o.President.Name != "" {
			title := "President"
			if e.Type == TypeCorporation {
				title = "Mayor"
			}
			e.Head = &Head{Name: o.President.Name, Title: title}
		}
		if o.Secretary != nil {
			e.Secretary = o.Secretary.Name
		}
	}
	return e, true
}

// BuildEntries returns the entries of all features having a geometry and the
// number of features skipped.
func BuildEntries(fc *FeatureCollection) (entries []Entry, skipped int) {
	entries = make([]Entry, 0, len(fc.Features))
	for i, f := range fc.Features {
		e, ok := NewEntry(i+1, f)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return
}

// WriteEntries writes entries as indented JSON without escaping non-ASCII names.
func WriteEntries(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(entries)
}

func ReadEntries(in io.Reader) ([]Entry, error) {
	var entries []Entry
	err := json.NewDecoder(in).Decode(&entries)
	return entries, err
}

type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Summary struct {
	Total      int     `json:"total"`
	Skipped    int     `json:"skipped"`
	ByType     []Count `json:"byType"`
	ByDistrict []Count `json:"byDistrict"`
}

func Summarize(entries []Entry, skipped int) Summary {
	return Summary{
		Total:   len(entries),
		Skipped: skipped,
		ByType: sortedCounts(lo.CountValuesBy(entries, func(e Entry) string {
			return e.Type
		})),
		ByDistrict: sortedCounts(lo.CountValuesBy(entries, func(e Entry) string {
			return e.District
		})),
	}
}

func sortedCounts(m map[string]int) []Count {
	counts := lo.MapToSlice(m, func(k string, v int) Count {
		return Count{Key: k, Count: v}
	})
	sort.Slice(counts, func(i, j int) bool { return counts[i].Key < counts[j].Key })
	return counts
}
