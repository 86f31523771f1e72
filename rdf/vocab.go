package rdf

// Namespaces.
const (
	RDFNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSDNS = "http://www.w3.org/2001/XMLSchema#"
)

// RDF vocabulary terms used by the parsers and serializers.
const (
	RDFType       = RDFNS + "type"
	RDFFirst      = RDFNS + "first"
	RDFRest       = RDFNS + "rest"
	RDFNil        = RDFNS + "nil"
	RDFLangString = RDFNS + "langString"
	RDFXMLLiteral = RDFNS + "XMLLiteral"
	RDFStatement  = RDFNS + "Statement"
	RDFSubject    = RDFNS + "subject"
	RDFPredicate  = RDFNS + "predicate"
	RDFObject     = RDFNS + "object"
	RDFReifies    = RDFNS + "reifies"
)

// XML Schema datatypes used for Turtle literal shorthands.
const (
	XSDString  = XSDNS + "string"
	XSDBoolean = XSDNS + "boolean"
	XSDInteger = XSDNS + "integer"
	XSDDecimal = XSDNS + "decimal"
	XSDDouble  = XSDNS + "double"
)
