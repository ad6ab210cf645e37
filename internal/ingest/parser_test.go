package ingest

import (
	"net/url"
	"reflect"
	"testing"
)

func TestChain_JSONAndFormBodiesAgree(t *testing.T) {
	chain := DefaultChain()

	fromJSON, jsonParser, err := chain.Parse(Request{Body: []byte(`{"name":"A","attendance":"yes"}`)})
	if err != nil {
		t.Fatalf("json parse: %v", err)
	}
	fromForm, formParser, err := chain.Parse(Request{Body: []byte(`name=A&attendance=yes`)})
	if err != nil {
		t.Fatalf("form parse: %v", err)
	}

	if jsonParser != "json" || formParser != "form" {
		t.Errorf("parsers = %q, %q; want json, form", jsonParser, formParser)
	}
	if !reflect.DeepEqual(fromJSON, fromForm) {
		t.Errorf("records differ: json=%v form=%v", fromJSON, fromForm)
	}
}

func TestChain_Order(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		wantParser string
		want       Record
	}{
		{
			name:       "json with non string values",
			req:        Request{Body: []byte(`{"name":"Jane","guests":2,"plusOne":true,"message":null}`)},
			wantParser: "json",
			want:       Record{"name": "Jane", "guests": "2", "plusOne": "true", "message": ""},
		},
		{
			name:       "url encoded body with escapes",
			req:        Request{Body: []byte(`name=Jane+Doe&whatsapp=%2B1+5551234&message=So+happy%21`)},
			wantParser: "form",
			want:       Record{"name": "Jane Doe", "whatsapp": "+1 5551234", "message": "So happy!"},
		},
		{
			name:       "value containing equals sign",
			req:        Request{Body: []byte(`message=a=b&name=X`)},
			wantParser: "form",
			want:       Record{"message": "a=b", "name": "X"},
		},
		{
			name:       "broken escape kept verbatim",
			req:        Request{Body: []byte(`name=100%&attendance=no`)},
			wantParser: "form",
			want:       Record{"name": "100%", "attendance": "no"},
		},
		{
			name:       "json array falls through to form parsing",
			req:        Request{Body: []byte(`[1,2]`)},
			wantParser: "form",
			want:       Record{"[1,2]": ""},
		},
		{
			name: "no body uses runtime params",
			req: Request{Params: url.Values{
				"name":       {"Jane"},
				"attendance": {"yes", "no"},
			}},
			wantParser: "params",
			want:       Record{"name": "Jane", "attendance": "yes"},
		},
		{
			name:       "whitespace body counts as absent",
			req:        Request{Body: []byte("  \n"), Params: url.Values{"name": {"Q"}}},
			wantParser: "params",
			want:       Record{"name": "Q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parser, err := DefaultChain().Parse(tt.req)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if parser != tt.wantParser {
				t.Errorf("parser = %q, want %q", parser, tt.wantParser)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("record = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChain_NoParser(t *testing.T) {
	chain := NewChain(JSONParser{})
	if _, _, err := chain.Parse(Request{Body: []byte("name=A")}); err != ErrNoParser {
		t.Errorf("err = %v, want ErrNoParser", err)
	}
}
