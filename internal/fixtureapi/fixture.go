package fixtureapi

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultFixture []byte

// Response is one canned endpoint reply.
type Response struct {
	Status    int
	Delay     time.Duration
	FailEvery int    // every Nth request answers 503; 0 disables
	Body      []byte // JSON, key order as written in the fixture
}

// Fixture maps endpoint paths (relative to PathPrefix) to canned replies.
type Fixture struct {
	Endpoints map[string]*Response
	order     []string
}

// Paths returns the endpoint paths in fixture order.
func (f *Fixture) Paths() []string {
	return append([]string(nil), f.order...)
}

// Default returns the embedded fixture.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture file, or the embedded default when path is empty.
func Load(path string) (*Fixture, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtureapi: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture. Bodies are converted to JSON through the
// node tree so mapping order survives; the /current payload depends on it.
func Parse(data []byte) (*Fixture, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixtureapi: parse: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("fixtureapi: line %d: expected mapping at top level", root.Line)
	}

	fx := &Fixture{Endpoints: make(map[string]*Response)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Value != "endpoints" {
			continue
		}
		if val.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("fixtureapi: line %d: endpoints must be a mapping", val.Line)
		}
		for j := 0; j+1 < len(val.Content); j += 2 {
			path := val.Content[j].Value
			if !strings.HasPrefix(path, "/") {
				return nil, fmt.Errorf("fixtureapi: line %d: endpoint %q must start with /", val.Content[j].Line, path)
			}
			resp, err := parseResponse(val.Content[j+1])
			if err != nil {
				return nil, fmt.Errorf("fixtureapi: endpoint %s: %w", path, err)
			}
			if _, dup := fx.Endpoints[path]; !dup {
				fx.order = append(fx.order, path)
			}
			fx.Endpoints[path] = resp
		}
	}

	if len(fx.Endpoints) == 0 {
		return nil, fmt.Errorf("fixtureapi: no endpoints defined")
	}
	return fx, nil
}

func parseResponse(n *yaml.Node) (*Response, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected mapping", n.Line)
	}
	resp := &Response{Status: 200}
	hasBody := false
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "status":
			if err := val.Decode(&resp.Status); err != nil {
				return nil, fmt.Errorf("status: %w", err)
			}
		case "delay":
			var raw string
			if err := val.Decode(&raw); err != nil {
				return nil, fmt.Errorf("delay: %w", err)
			}
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("delay: %w", err)
			}
			resp.Delay = d
		case "fail_every":
			if err := val.Decode(&resp.FailEvery); err != nil {
				return nil, fmt.Errorf("fail_every: %w", err)
			}
		case "body":
			var sb strings.Builder
			if err := writeJSON(&sb, val); err != nil {
				return nil, fmt.Errorf("body: %w", err)
			}
			resp.Body = []byte(sb.String())
			hasBody = true
		default:
			return nil, fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}
	if !hasBody {
		return nil, fmt.Errorf("line %d: missing body", n.Line)
	}
	return resp, nil
}

// writeJSON renders a YAML node as JSON, keeping mapping order.
func writeJSON(sb *strings.Builder, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			sb.WriteString("null")
			return nil
		}
		return writeJSON(sb, n.Content[0])
	case yaml.AliasNode:
		return writeJSON(sb, n.Alias)
	case yaml.MappingNode:
		sb.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeQuoted(sb, n.Content[i].Value)
			sb.WriteByte(':')
			if err := writeJSON(sb, n.Content[i+1]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	case yaml.SequenceNode:
		sb.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSON(sb, item); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case yaml.ScalarNode:
		return writeScalar(sb, n)
	default:
		return fmt.Errorf("line %d: unsupported node kind %v", n.Line, n.Kind)
	}
	return nil
}

func writeScalar(sb *strings.Builder, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		sb.WriteString("null")
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		sb.WriteString(strconv.FormatBool(b))
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return err
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return err
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("line %d: %s is not representable in JSON", n.Line, n.Value)
		}
		sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		writeQuoted(sb, n.Value)
	}
	return nil
}

// writeQuoted emits a JSON string literal. strconv.Quote is not used because
// some of its escapes (\x..) are not valid JSON.
func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}
