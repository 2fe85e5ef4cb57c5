package mapping

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"gopkg.in/yaml.v3"
)

// Ontology is the short prefix of an external code system, as used in
// "PREFIX:LOCAL" code strings.
type Ontology string

const (
	OntologyATC      Ontology = "ATC"
	OntologyICD10PCS Ontology = "ICD10PCS"
	OntologyICD10    Ontology = "ICD10"
	OntologyICD9CM   Ontology = "ICD9CM"
	OntologyLOINC    Ontology = "LOINC"
	OntologySNOMEDCT Ontology = "SNOMEDCT"
	OntologyRXNORM   Ontology = "RXNORM"
)

// BioPortalBases maps the built-in ontologies to their BioPortal base IRIs.
var BioPortalBases = map[Ontology]string{
	OntologyATC:      "http://purl.bioontology.org/ontology/ATC/",
	OntologyICD10PCS: "http://purl.bioontology.org/ontology/ICD10PCS/",
	OntologyICD10:    "http://purl.bioontology.org/ontology/ICD10CM/",
	OntologyICD9CM:   "http://purl.bioontology.org/ontology/ICD9CM/",
	OntologyLOINC:    "http://purl.bioontology.org/ontology/LNC/",
	OntologySNOMEDCT: "http://purl.bioontology.org/ontology/SNOMEDCT/",
	OntologyRXNORM:   "http://purl.bioontology.org/ontology/RXNORM/",
}

// curiePattern matches "PREFIX:LOCAL". A local part starting with "/" is
// treated as an ordinary code (e.g. "http://...") rather than a reference.
var curiePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*):([^\s/]\S*)$`)

// SplitCURIE splits a short-code reference into prefix and local part.
// ok is false when code is not shaped like a reference.
func SplitCURIE(code string) (prefix Ontology, local string, ok bool) {
	m := curiePattern.FindStringSubmatch(code)
	if m == nil {
		return "", "", false
	}
	return Ontology(m[1]), m[2], true
}

// Resolver turns short-code references into external IRIs.
type Resolver struct {
	bases map[Ontology]string
}

// NewResolver returns a resolver over the built-in table merged with extra.
// Entries in extra override built-ins with the same prefix.
func NewResolver(extra map[string]string) *Resolver {
	bases := make(map[Ontology]string, len(BioPortalBases)+len(extra))
	for k, v := range BioPortalBases {
		bases[k] = v
	}
	for k, v := range extra {
		bases[Ontology(k)] = v
	}
	return &Resolver{bases: bases}
}

// Base returns the base IRI registered for o.
func (r *Resolver) Base(o Ontology) (string, bool) {
	base, ok := r.bases[o]
	return base, ok
}

// Ontologies returns the registered prefixes in sorted order.
func (r *Resolver) Ontologies() []Ontology {
	out := make([]Ontology, 0, len(r.bases))
	for o := range r.bases {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve maps a code string to an external IRI. external is false when the
// code is not a short-code reference; the caller then mints an internal IRI.
// A reference with an unregistered prefix yields an *UnknownPrefixError.
// The local part is percent-encoded like minted keys, so "E11.9" is kept
// verbatim and "E11>" becomes "E11%3E".
func (r *Resolver) Resolve(code string) (iri quad.IRI, external bool, err error) {
	prefix, local, ok := SplitCURIE(code)
	if !ok {
		return "", false, nil
	}
	base, ok := r.bases[prefix]
	if !ok {
		return "", false, &UnknownPrefixError{Prefix: string(prefix), Code: code}
	}
	return quad.IRI(base + Escape(local)), true, nil
}

// ReadPrefixFile loads a YAML mapping of ontology prefix to base IRI.
//
//	ICD10: http://purl.bioontology.org/ontology/ICD10CM/
//	MIMIC_ITEM: https://example.org/mimic/item/
func ReadPrefixFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prefix file: %w", err)
	}
	var table map[string]string
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing prefix file %s: %w", path, err)
	}
	for prefix, base := range table {
		if _, _, ok := SplitCURIE(prefix + ":x"); !ok {
			return nil, fmt.Errorf("prefix file %s: invalid prefix %q", path, prefix)
		}
		if strings.TrimSpace(base) == "" {
			return nil, fmt.Errorf("prefix file %s: empty base IRI for %q", path, prefix)
		}
	}
	return table, nil
}
