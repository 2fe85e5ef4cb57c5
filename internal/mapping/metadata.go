package mapping

import (
	"net/url"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/models"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

type meta = models.DatasetMetadata

var datasetFields = []field[meta]{
	{Column{"dataset_name", vocab.DatasetName, vocab.XSDString}, func(r meta) Value { return Opt(r.DatasetName) }},
	{Column{"dataset_version", vocab.DatasetVersion, vocab.XSDString}, func(r meta) Value { return Opt(r.DatasetVersion) }},
	{Column{"etl_name", vocab.ETLName, vocab.XSDString}, func(r meta) Value { return Opt(r.ETLName) }},
	{Column{"etl_version", vocab.ETLVersion, vocab.XSDString}, func(r meta) Value { return Opt(r.ETLVersion) }},
	{Column{"etl_notes", vocab.ETLNotes, vocab.XSDString}, func(r meta) Value { return Opt(r.ETLNotes) }},
	{Column{"meds_version", vocab.MEDSVersion, vocab.XSDString}, func(r meta) Value { return Opt(r.MEDSVersion) }},
	{Column{"protocol_notes", vocab.ProtocolNotes, vocab.XSDString}, func(r meta) Value { return Opt(r.ProtocolNotes) }},
	{Column{"created_at", vocab.CreatedAt, vocab.XSDDateTime}, func(r meta) Value { return Opt(r.CreatedAt) }},
	{Column{"license", vocab.License, vocab.XSDString}, func(r meta) Value { return Opt(r.License) }},
	{Column{"location_uri", vocab.LocationURI, vocab.XSDAnyURI}, func(r meta) Value { return Opt(r.LocationURI) }},
	{Column{"description_uri", vocab.DescriptionURI, vocab.XSDString}, func(r meta) Value { return Opt(r.DescriptionURI) }},

	{Column{"site_id_columns", vocab.SiteIDColumn, vocab.XSDString}, func(r meta) Value { return List(r.SiteIDColumns) }},
	{Column{"subject_id_columns", vocab.SubjectIDColumn, vocab.XSDString}, func(r meta) Value { return List(r.SubjectIDColumns) }},
	{Column{"table_names", vocab.TableName, vocab.XSDString}, func(r meta) Value { return List(r.TableNames) }},
	{Column{"raw_source_id_columns", vocab.RawSourceIDColumn, vocab.XSDString}, func(r meta) Value { return List(r.RawSourceIDColumns) }},
	{Column{"code_modifier_columns", vocab.CodeModifierColumn, vocab.XSDString}, func(r meta) Value { return List(r.CodeModifierColumns) }},
	{Column{"additional_value_modality_columns", vocab.AdditionalValueModalityColumn, vocab.XSDString}, func(r meta) Value { return List(r.AdditionalValueModalityColumns) }},
	{Column{"other_extension_columns", vocab.OtherExtensionColumn, vocab.XSDString}, func(r meta) Value { return List(r.OtherExtensionColumns) }},
}

// MapDatasetMetadata maps the dataset metadata object to a
// meds:DatasetMetadata resource and returns its identifier, which the other
// mappers use for provenance links. Distribution, ETL activity and license
// sub-resources are created only when their source fields are present.
func (m *Mapper) MapDatasetMetadata(g *graph.Graph, md models.DatasetMetadata) quad.IRI {
	var b batch
	iri := m.mint.Opaque(vocab.PathDataset)
	b.typed(iri, vocab.ClassDatasetMetadata)
	projectRow(&b, iri, md, datasetFields)

	m.distribution(&b, iri, md)
	m.etlActivity(&b, iri, md)
	m.license(&b, iri, md)

	b.commit(g)
	return iri
}

func (m *Mapper) distribution(b *batch, dataset quad.IRI, md models.DatasetMetadata) {
	if md.LocationURI == nil {
		return
	}
	iri := m.mint.Opaque(vocab.PathDistribution)
	b.typed(iri, vocab.DCATDistribution)
	b.add(iri, vocab.DCATDownloadURL, reference(*md.LocationURI))
	if md.DescriptionURI != nil {
		b.add(iri, vocab.DCATAccessURL, reference(*md.DescriptionURI))
	}
	b.add(dataset, vocab.DCATDistributionRel, iri)
}

func (m *Mapper) etlActivity(b *batch, dataset quad.IRI, md models.DatasetMetadata) {
	if md.ETLName == nil && md.ETLVersion == nil && md.ETLNotes == nil && md.ProtocolNotes == nil {
		return
	}
	iri := m.mint.Opaque(vocab.PathActivity)
	b.typed(iri, vocab.ProvActivity)
	if md.ETLName != nil {
		b.add(iri, vocab.RDFSLabel, stringLiteral(*md.ETLName))
	}
	if md.ETLVersion != nil {
		b.add(iri, vocab.OWLVersionInfo, stringLiteral(*md.ETLVersion))
	}
	if notes, ok := joinNotes(md.ETLNotes, md.ProtocolNotes); ok {
		b.add(iri, vocab.RDFSComment, stringLiteral(notes))
	}
	b.add(dataset, vocab.ProvWasGeneratedBy, iri)
}

func (m *Mapper) license(b *batch, dataset quad.IRI, md models.DatasetMetadata) {
	if md.License == nil {
		return
	}
	iri := m.mint.Opaque(vocab.PathLicense)
	b.typed(iri, vocab.DCTermsLicenseDoc)
	b.add(iri, vocab.RDFSLabel, stringLiteral(*md.License))
	b.add(dataset, vocab.DCTermsLicense, iri)
}

// joinNotes combines ETL and protocol notes, separated by a blank line when
// both are present.
func joinNotes(etl, protocol *string) (string, bool) {
	var parts []string
	for _, p := range []*string{etl, protocol} {
		if p != nil {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n\n"), true
}

// reference returns s as an IRI when it parses as an absolute URI and as an
// xsd:anyURI literal otherwise.
func reference(s string) quad.Value {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || !u.IsAbs() {
		return quad.TypedString{Value: quad.String(s), Type: vocab.XSDAnyURI}
	}
	return quad.IRI(u.String())
}
