package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/krxdata/internal/common"
	"github.com/bobmcallan/krxdata/internal/interfaces"
	"github.com/bobmcallan/krxdata/internal/models"
)

// ParamType is the JSON type of an operation argument.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeBoolean ParamType = "boolean"
)

// Param describes one operation argument. Adapters derive their schemas from it.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     any // nil means the argument is optional with no default
	Description string
	Enum        []string
}

// Operation is a registered tool operation.
type Operation struct {
	Name        string
	Description string
	Params      []Param
	handler     Handler
}

// Call runs the operation with caller-supplied arguments. It always returns
// an envelope.
func (o *Operation) Call(ctx context.Context, raw map[string]any) *models.Record {
	return o.handler(ctx, raw)
}

// Args are the bound arguments of one invocation: every declared parameter
// in declaration order, defaults applied, absent optionals set to nil.
type Args struct {
	values *models.Record
}

// Str returns a string argument, or "" when absent.
func (a Args) Str(name string) string {
	s, _ := a.values.GetString(name)
	return s
}

// Bool returns a boolean argument, or false when absent.
func (a Args) Bool(name string) bool {
	v, _ := a.values.Get(name)
	b, _ := v.(bool)
	return b
}

// Present reports whether the argument was supplied or defaulted to a
// non-empty value.
func (a Args) Present(name string) bool {
	v, ok := a.values.Get(name)
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return s != ""
	}
	return true
}

// Opt returns the argument value as-is, nil when absent. Used to echo
// optional arguments into envelopes.
func (a Args) Opt(name string) any {
	v, _ := a.values.Get(name)
	return v
}

// bind checks caller arguments against the declared parameters. Unknown
// argument names are ignored.
func bind(params []Param, raw map[string]any) (Args, error) {
	values := models.NewRecord()
	for _, p := range params {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Required {
				return Args{}, fmt.Errorf("Missing required argument: %s", p.Name)
			}
			values.Set(p.Name, p.Default)
			continue
		}

		switch p.Type {
		case TypeBoolean:
			b, err := coerceBool(v)
			if err != nil {
				return Args{}, fmt.Errorf("Argument %s %w", p.Name, err)
			}
			values.Set(p.Name, b)
		default:
			s, isStr := v.(string)
			if !isStr {
				return Args{}, fmt.Errorf("Argument %s must be a string, got %s: %v", p.Name, jsonTypeName(v), v)
			}
			values.Set(p.Name, s)
		}
	}
	return Args{values: values}, nil
}

func coerceBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("must be a boolean, got %s: %v", jsonTypeName(v), v)
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// supplied returns the declared arguments the caller passed, in declaration
// order, for echoing when binding fails.
func supplied(params []Param, raw map[string]any) *models.Record {
	rec := models.NewRecord()
	for _, p := range params {
		if v, ok := raw[p.Name]; ok {
			rec.Set(p.Name, v)
		}
	}
	return rec
}

// Service holds the tool operations and the market data client they call.
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
	ops    []*Operation
	byName map[string]*Operation
}

// NewService creates the tool service and registers every operation.
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Service{
		client: client,
		logger: logger,
		byName: make(map[string]*Operation),
	}
	s.registerStockOperations()
	s.registerETFOperations()
	s.registerIndexOperations()
	s.registerShortingOperations()
	s.registerInvestorOperations()
	s.registerMarketOperations()
	return s
}

// register composes core with the guard and adds it to the service.
func (s *Service) register(name, description string, params []Param, core Core) {
	op := &Operation{
		Name:        name,
		Description: description,
		Params:      params,
	}
	op.handler = Guard(s.logger, name, params, core)
	s.ops = append(s.ops, op)
	s.byName[name] = op
}

// Operations returns the registered operations in registration order.
func (s *Service) Operations() []*Operation {
	out := make([]*Operation, len(s.ops))
	copy(out, s.ops)
	return out
}

// Lookup returns the named operation.
func (s *Service) Lookup(name string) (*Operation, bool) {
	op, ok := s.byName[name]
	return op, ok
}

// Call runs the named operation. An unknown name yields an error envelope.
func (s *Service) Call(ctx context.Context, name string, raw map[string]any) *models.Record {
	op, ok := s.byName[name]
	if !ok {
		return ErrorEnvelope(fmt.Sprintf("Unknown tool: %s", name), "function", name)
	}
	return op.Call(ctx, raw)
}

// Parameter builders shared by the operation files.

func tickerParam(desc string) Param {
	return Param{Name: "ticker", Type: TypeString, Required: true, Description: desc}
}

func dateParam(name, desc string) Param {
	return Param{Name: name, Type: TypeString, Required: true, Description: desc}
}

func optionalDateParam(name, desc string) Param {
	return Param{Name: name, Type: TypeString, Description: desc}
}

func marketParam(set []string, def string, desc string) Param {
	p := Param{Name: "market", Type: TypeString, Description: desc, Enum: set}
	if def == "" {
		p.Required = true
	} else {
		p.Default = def
	}
	return p
}

var (
	startDateParam = dateParam("start_date", "Start date in YYYYMMDD format (e.g., \"20240101\")")
	endDateParam   = dateParam("end_date", "End date in YYYYMMDD format (e.g., \"20240131\")")
	dayParam       = dateParam("date", "Date in YYYYMMDD format (e.g., \"20240101\")")
)
