package structured

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSON_WholeTextValid(t *testing.T) {
	t.Parallel()
	raw, err := ExtractJSON(`{"a":1}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"a":1}` {
		t.Fatalf("got %s", raw)
	}
}

func TestExtractJSON_WithPreambleAndPostamble(t *testing.T) {
	t.Parallel()
	text := "Here are the claims:\n{\"claims\":[{\"claim_id\":\"C1\"}]}\nLet me know if you need anything else."
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Claims []struct {
			ClaimID string `json:"claim_id"`
		} `json:"claims"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(out.Claims) != 1 || out.Claims[0].ClaimID != "C1" {
		t.Fatalf("unexpected decode: %+v", out)
	}
}

func TestExtractJSON_BracesInsideStringIgnored(t *testing.T) {
	t.Parallel()
	text := `prose {"text": "note: use { and } in examples"} trailing`
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.Text != "note: use { and } in examples" {
		t.Fatalf("got %q", out.Text)
	}
}

func TestExtractJSON_NoJSONFound(t *testing.T) {
	t.Parallel()
	_, err := ExtractJSON("no json here at all")
	var target *ErrNoJSONFound
	if !errors.As(err, &target) {
		t.Fatalf("expected ErrNoJSONFound, got %v", err)
	}
}

func TestExtractJSON_MalformedNotRepaired(t *testing.T) {
	t.Parallel()
	_, err := ExtractJSON(`{"a": 1,}`)
	var target *ErrNoJSONFound
	if !errors.As(err, &target) {
		t.Fatalf("expected ErrNoJSONFound for trailing comma, got %v", err)
	}
}

func TestExtractJSON_Idempotent(t *testing.T) {
	t.Parallel()
	once, err := ExtractJSON(`noise {"a":1} noise`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := ExtractJSON(string(once))
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if string(once) != string(twice) {
		t.Fatalf("expected idempotent extraction: %s != %s", once, twice)
	}
}

func TestDecodeInto_Success(t *testing.T) {
	t.Parallel()
	type payload struct {
		A int `json:"a"`
	}
	v, err := DecodeInto[payload](json.RawMessage(`{"a":7}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.A != 7 {
		t.Fatalf("got %d", v.A)
	}
}

func TestDecodeInto_SchemaMismatch(t *testing.T) {
	t.Parallel()
	type payload struct {
		A int `json:"a"`
	}
	_, err := DecodeInto[payload](json.RawMessage(`{"a":"not-a-number"}`))
	var target *ErrSchemaValidation
	if !errors.As(err, &target) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}
