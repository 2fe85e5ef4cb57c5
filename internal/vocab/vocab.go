// Package vocab holds the namespace and term IRIs used when mapping MEDS
// tables to RDF.
package vocab

// Base namespaces of the MEDS ontology and its instance data.
const (
	// Namespace is the base IRI for MEDS schema terms.
	Namespace = "https://albertomarfoglia.github.io/meds-ontology#"

	// InstanceNamespace is the base IRI for minted instance resources.
	InstanceNamespace = "https://albertomarfoglia.github.io/meds-data/"
)

// Standard vocabularies.
const (
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	XSD     = "http://www.w3.org/2001/XMLSchema#"
	OWL     = "http://www.w3.org/2002/07/owl#"
	PROV    = "http://www.w3.org/ns/prov#"
	DCAT    = "http://www.w3.org/ns/dcat#"
	DCTERMS = "http://purl.org/dc/terms/"
)

// RDF and RDFS terms.
const (
	RDFType        = RDF + "type"
	RDFSLabel      = RDFS + "label"
	RDFSComment    = RDFS + "comment"
	OWLVersionInfo = OWL + "versionInfo"
)

// XSD datatypes used for typed literals.
const (
	XSDString   = XSD + "string"
	XSDDateTime = XSD + "dateTime"
	XSDDouble   = XSD + "double"
	XSDInt      = XSD + "int"
	XSDBoolean  = XSD + "boolean"
	XSDAnyURI   = XSD + "anyURI"
)

// PROV-O terms.
const (
	ProvActivity       = PROV + "Activity"
	ProvWasDerivedFrom = PROV + "wasDerivedFrom"
	ProvWasGeneratedBy = PROV + "wasGeneratedBy"
)

// DCAT and Dublin Core terms used for dataset distribution and licensing.
const (
	DCATDistribution    = DCAT + "Distribution"
	DCATDistributionRel = DCAT + "distribution"
	DCATDownloadURL     = DCAT + "downloadURL"
	DCATAccessURL       = DCAT + "accessURL"
	DCTermsLicense      = DCTERMS + "license"
	DCTermsLicenseDoc   = DCTERMS + "LicenseDocument"
)

// DefaultPrefixes returns the prefix bindings written by serializers.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"meds":    Namespace,
		"data":    InstanceNamespace,
		"rdf":     RDF,
		"rdfs":    RDFS,
		"xsd":     XSD,
		"owl":     OWL,
		"prov":    PROV,
		"dcat":    DCAT,
		"dcterms": DCTERMS,
	}
}
