package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	jsonschema2 "github.com/santhosh-tekuri/jsonschema/v6"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Cyclone1070/vsh/internal/tool"
)

var printer = message.NewPrinter(language.English)

// argsSchema is the reflected and compiled schema of one typed argument struct.
type argsSchema struct {
	decl      *tool.Schema
	document  map[string]any
	validator *jsonschema2.Schema
}

// reflectArgs derives the schema for the argument struct v. Field order
// follows the struct declaration. A field is required unless its json tag
// carries omitempty.
func reflectArgs(name string, v any) (*argsSchema, error) {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	reflected := r.Reflect(v)

	raw, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema for %s: %w", name, err)
	}
	doc, err := jsonschema2.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema for %s: %w", name, err)
	}
	document, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema for %s is not an object", name)
	}

	url := "vsh:///tools/" + name + ".json"
	compiler := jsonschema2.NewCompiler()
	if err := compiler.AddResource(url, document); err != nil {
		return nil, fmt.Errorf("failed to add schema for %s: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema for %s: %w", name, err)
	}

	return &argsSchema{
		decl:      convertSchema(reflected),
		document:  document,
		validator: compiled,
	}, nil
}

// validate checks a decoded JSON value (numbers as json.Number) and returns
// the sorted leaf messages on failure.
func (s *argsSchema) validate(doc any) []string {
	err := s.validator.Validate(doc)
	if err == nil {
		return nil
	}
	return validationMessages(err)
}

// validateValue marshals v and validates the resulting document.
func (s *argsSchema) validateValue(v any) ([]string, error) {
	doc, err := toDocument(v)
	if err != nil {
		return nil, err
	}
	return s.validate(doc), nil
}

func toDocument(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema2.UnmarshalJSON(bytes.NewReader(raw))
}

func validationMessages(err error) []string {
	var verr *jsonschema2.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}
	var msgs []string
	collectLeaves(verr, &msgs)
	sort.Strings(msgs)
	return msgs
}

func collectLeaves(e *jsonschema2.ValidationError, out *[]string) {
	if len(e.Causes) == 0 {
		*out = append(*out, fmt.Sprintf("%s: %s", location(e.InstanceLocation), e.ErrorKind.LocalizedString(printer)))
		return
	}
	for _, cause := range e.Causes {
		collectLeaves(cause, out)
	}
}

func location(tokens []string) string {
	if len(tokens) == 0 {
		return "(root)"
	}
	return "/" + strings.Join(tokens, "/")
}

// convertSchema maps a reflected schema onto the provider-neutral form.
func convertSchema(s *jsonschema.Schema) *tool.Schema {
	if s == nil {
		return nil
	}
	out := &tool.Schema{
		Type:        tool.Type(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Items:       convertSchema(s.Items),
	}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(e))
	}
	if s.Minimum != "" {
		if f, err := s.Minimum.Float64(); err == nil {
			out.Minimum = &f
		}
	}
	out.Properties, out.PropertyOrdering = convertProperties(s.Properties)
	return out
}

// convertProperties converts properties and reports their declaration order.
func convertProperties(props *orderedmap.OrderedMap[string, *jsonschema.Schema]) (map[string]*tool.Schema, []string) {
	if props == nil || props.Len() == 0 {
		return nil, nil
	}
	out := make(map[string]*tool.Schema, props.Len())
	order := make([]string, 0, props.Len())
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = convertSchema(pair.Value)
		order = append(order, pair.Key)
	}
	return out, order
}
