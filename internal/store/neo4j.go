package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/ajitpratap0/meds2rdf/internal/config"
	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
	"github.com/ajitpratap0/meds2rdf/pkg/xmlutil"
)

// Neo4j schema: every IRI is a (:Resource {iri}) node. rdf:type objects are
// kept in the node's types list, literals become node properties keyed by
// predicate local name, and IRI-valued triples become relationships typed
// by predicate local name.
const (
	neo4jConstraint = `CREATE CONSTRAINT resource_iri_unique IF NOT EXISTS FOR (r:Resource) REQUIRE r.iri IS UNIQUE`

	neo4jNodeStatement = `
UNWIND $nodes AS n
MERGE (r:Resource {iri: n.iri})
SET r += n.props, r.types = n.types
`
)

// neo4jEdgeStatement returns the UNWIND/MERGE statement for one
// relationship type. Relationship types cannot be parameters, so relType
// is quoted as an identifier.
func neo4jEdgeStatement(relType string) string {
	return fmt.Sprintf(`
UNWIND $rels AS r
MERGE (a:Resource {iri: r.src})
MERGE (b:Resource {iri: r.dst})
MERGE (a)-[e:%s]->(b)
SET e.iri = r.predicate
`, quoteIdentifier(relType))
}

func quoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// Node is a graph resource flattened to a property-graph node.
type Node struct {
	IRI   string
	Types []string
	Props map[string]any
}

// Edge is an IRI-valued triple.
type Edge struct {
	Source    string
	Target    string
	Predicate string
}

// PropertyGraph is the Neo4j projection of a graph.
type PropertyGraph struct {
	Nodes []Node
	// Edges groups relationships by relationship type.
	Edges map[string][]Edge
}

// RelTypes returns the relationship types in lexical order.
func (pg *PropertyGraph) RelTypes() []string {
	out := make([]string, 0, len(pg.Edges))
	for k := range pg.Edges {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BuildPropertyGraph projects g onto nodes and relationships. Subjects keep
// their insertion order. A predicate with several literal values on one
// subject becomes a list property.
func BuildPropertyGraph(g *graph.Graph) *PropertyGraph {
	pg := &PropertyGraph{Edges: make(map[string][]Edge)}
	index := make(map[quad.IRI]int)

	for _, t := range g.Triples() {
		i, ok := index[t.Subject]
		if !ok {
			i = len(pg.Nodes)
			index[t.Subject] = i
			pg.Nodes = append(pg.Nodes, Node{IRI: string(t.Subject), Types: []string{}, Props: map[string]any{}})
		}
		n := &pg.Nodes[i]

		if iri, isIRI := t.Object.(quad.IRI); isIRI {
			if t.Predicate == vocab.RDFType {
				n.Types = append(n.Types, string(iri))
				continue
			}
			rel := localName(t.Predicate)
			pg.Edges[rel] = append(pg.Edges[rel], Edge{Source: string(t.Subject), Target: string(iri), Predicate: string(t.Predicate)})
			continue
		}

		key := localName(t.Predicate)
		val := propertyValue(t.Object)
		switch existing := n.Props[key].(type) {
		case nil:
			n.Props[key] = val
		case []any:
			n.Props[key] = append(existing, val)
		default:
			n.Props[key] = []any{existing, val}
		}
	}
	return pg
}

func localName(p quad.IRI) string {
	if _, local, ok := xmlutil.SplitIRI(string(p)); ok {
		return local
	}
	return string(p)
}

// propertyValue converts a literal to a native Neo4j value where its
// datatype allows, falling back to the lexical form.
func propertyValue(v quad.Value) any {
	switch t := v.(type) {
	case quad.TypedString:
		s := string(t.Value)
		switch string(t.Type) {
		case vocab.XSDDouble:
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		case vocab.XSDInt:
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return i
			}
		case vocab.XSDBoolean:
			if b, err := strconv.ParseBool(s); err == nil {
				return b
			}
		}
		return s
	case quad.String:
		return string(t)
	case quad.LangString:
		return string(t.Value)
	default:
		return v.String()
	}
}

func (n Node) params() map[string]any {
	return map[string]any{"iri": n.IRI, "types": n.Types, "props": n.Props}
}

func (e Edge) params() map[string]any {
	return map[string]any{"src": e.Source, "dst": e.Target, "predicate": e.Predicate}
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}

// Neo4jStore writes the property-graph projection of a graph to Neo4j.
type Neo4jStore struct {
	driver    neo4j.DriverWithContext
	database  string
	batchSize int
	logger    *slog.Logger
}

// NewNeo4jStore connects to uri and verifies connectivity.
func NewNeo4jStore(ctx context.Context, uri string, cfg config.Neo4jConfig, logger *slog.Logger) (*Neo4jStore, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	auth := neo4j.BasicAuth(cfg.User, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(uri, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = cfg.MaxPoolSize
		c.SocketConnectTimeout = timeout
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: init driver: %w", err)
	}

	vctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(vctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j: verify connectivity: %w", err)
	}
	logger.Info("connected to Neo4j", "uri", uri, "database", cfg.Database)

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = config.DefaultNeo4jBatchSize
	}
	return &Neo4jStore{driver: driver, database: cfg.Database, batchSize: batch, logger: logger}, nil
}

// Save merges all nodes, then all relationships, in batches of batchSize
// rows per transaction. MERGE makes repeated saves idempotent.
func (s *Neo4jStore) Save(ctx context.Context, g *graph.Graph) error {
	return observe(KindNeo4j, s.save(ctx, g))
}

func (s *Neo4jStore) save(ctx context.Context, g *graph.Graph) error {
	pg := BuildPropertyGraph(g)

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	// Best-effort schema init.
	if res, err := session.Run(ctx, neo4jConstraint, nil); err != nil {
		s.logger.Warn("neo4j schema init failed (continuing)", "error", err)
	} else {
		_, _ = res.Consume(ctx)
	}

	for _, nodes := range chunk(pg.Nodes, s.batchSize) {
		rows := make([]map[string]any, len(nodes))
		for i, n := range nodes {
			rows[i] = n.params()
		}
		if err := s.write(ctx, session, neo4jNodeStatement, map[string]any{"nodes": rows}); err != nil {
			return fmt.Errorf("merging nodes: %w", err)
		}
	}

	edges := 0
	for _, rel := range pg.RelTypes() {
		stmt := neo4jEdgeStatement(rel)
		for _, batch := range chunk(pg.Edges[rel], s.batchSize) {
			rows := make([]map[string]any, len(batch))
			for i, e := range batch {
				rows[i] = e.params()
			}
			if err := s.write(ctx, session, stmt, map[string]any{"rels": rows}); err != nil {
				return fmt.Errorf("merging %s relationships: %w", rel, err)
			}
			edges += len(batch)
		}
	}

	s.logger.Info("graph merged into Neo4j", "nodes", len(pg.Nodes), "relationships", edges, "triples", g.Len())
	return nil
}

func (s *Neo4jStore) write(ctx context.Context, session neo4j.SessionWithContext, stmt string, params map[string]any) error {
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, stmt, params)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}

// Ping verifies connectivity to the server.
func (s *Neo4jStore) Ping(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// Close closes the driver.
func (s *Neo4jStore) Close() error {
	return s.driver.Close(context.Background())
}
