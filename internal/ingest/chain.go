package ingest

// Chain tries each parser in order and returns the first accepted record.
type Chain struct {
	parsers []Parser
}

func NewChain(parsers ...Parser) *Chain {
	return &Chain{parsers: parsers}
}

// DefaultChain is JSON, then URL-encoded body, then runtime parameters.
func DefaultChain() *Chain {
	return NewChain(JSONParser{}, FormBodyParser{}, ParamsParser{})
}

// Parse returns the record and the name of the parser that produced it.
func (c *Chain) Parse(req Request) (Record, string, error) {
	for _, p := range c.parsers {
		if rec, ok := p.Parse(req); ok {
			return rec, p.Name(), nil
		}
	}
	return nil, "", ErrNoParser
}
