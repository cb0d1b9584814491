package command

import (
	"errors"
	"testing"
)

func TestRenderSimple(t *testing.T) {
	tpl := New("{cmd} {query} {input}")
	argv, err := tpl.Render(Values{Cmd: "jq", Query: ".items[]", Input: "/tmp/in.json"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := []string{"jq", ".items[]", "/tmp/in.json"}
	if len(argv) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(argv), argv)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Fatalf("arg %d: expected %q, got %q", i, want[i], argv[i])
		}
	}
}

func TestRenderQueryWithSpacesStaysOneArg(t *testing.T) {
	tpl := New("{cmd} {query} {input}")
	argv, err := tpl.Render(Values{Cmd: "jq", Query: `.a | map(.b)`, Input: "in.json"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(argv) != 3 {
		t.Fatalf("query with spaces must remain one argv element, got %v", argv)
	}
	if argv[1] != `.a | map(.b)` {
		t.Fatalf("expected query preserved, got %q", argv[1])
	}
}

func TestRenderEmbeddedPlaceholder(t *testing.T) {
	tpl := New("{cmd} --input-format={from} {query} {input}")
	argv, err := tpl.Render(Values{Cmd: "yq", Query: ".", Input: "f", From: "yaml"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if argv[1] != "--input-format=yaml" {
		t.Fatalf("expected embedded substitution, got %q", argv[1])
	}
}

func TestRenderMissingPlaceholderValue(t *testing.T) {
	tpl := New("{cmd} --from {from} {query} {input}")
	_, err := tpl.Render(Values{Cmd: "yq", Query: ".", Input: "f"})
	if err == nil {
		t.Fatal("expected TemplateError for missing {from}")
	}
	var terr *TemplateError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TemplateError, got %T", err)
	}
	if terr.Placeholder != PlaceholderFrom {
		t.Fatalf("expected %s, got %s", PlaceholderFrom, terr.Placeholder)
	}
}

func TestRenderQueryContainingPlaceholderToken(t *testing.T) {
	tpl := New("{cmd} {query} {input}")
	query := `.msg = "{input}"`
	for i := 0; i < 100; i++ {
		argv, err := tpl.Render(Values{Cmd: "jq", Query: query, Input: "/tmp/secret.json"})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if argv[1] != query {
			t.Fatalf("placeholder token inside query was re-expanded: %q", argv[1])
		}
		if argv[2] != "/tmp/secret.json" {
			t.Fatalf("input element corrupted: %q", argv[2])
		}
	}
}

func TestRenderKeepsUnreferencedTokensInQuery(t *testing.T) {
	// {to} and {from} are valid jq object-construction shorthands; a
	// template that never mentions them must leave them alone in the query.
	tpl := New("{cmd} {query} {input}")
	argv, err := tpl.Render(Values{Cmd: "jq", Query: ". | {to}", Input: "in.json"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if argv[1] != ". | {to}" {
		t.Fatalf("unreferenced token stripped from query: %q", argv[1])
	}
}

func TestPreviewQueryContainingPlaceholderToken(t *testing.T) {
	tpl := New("{cmd} {query} {input}")
	got, err := tpl.Preview(Values{Cmd: "jq", Query: "{from}"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if got != "jq '{from}' <input>" {
		t.Fatalf("expected token preserved in preview, got %q", got)
	}
}

func TestRenderIgnoresUnreferencedValues(t *testing.T) {
	tpl := New("{cmd} {query} {input}")
	if _, err := tpl.Render(Values{Cmd: "jq", Query: ".", Input: "f"}); err != nil {
		t.Fatalf("unreferenced empty {from}/{to} must not error: %v", err)
	}
}

func TestPreviewMasksInputAndQuotesQuery(t *testing.T) {
	tpl := New("{cmd} {query} {input}")
	got, err := tpl.Preview(Values{Cmd: "jq", Query: ".a | .b"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	want := "jq '.a | .b' <input>"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPreviewEmptyQuery(t *testing.T) {
	tpl := New("{cmd} {query} {input}")
	got, err := tpl.Preview(Values{Cmd: "jq"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if got != "jq '' <input>" {
		t.Fatalf("expected quoted empty query, got %q", got)
	}
}

func TestEditKeepsContract(t *testing.T) {
	tpl := New("{cmd} {query} {input}")
	edited := tpl.Edit("{cmd} -r {query} {input}")
	if edited.Raw() != "{cmd} -r {query} {input}" {
		t.Fatalf("Edit did not replace raw string: %q", edited.Raw())
	}
	if tpl.Raw() != "{cmd} {query} {input}" {
		t.Fatalf("Edit must not mutate the original: %q", tpl.Raw())
	}
	argv, err := edited.Render(Values{Cmd: "jq", Query: ".", Input: "f"})
	if err != nil {
		t.Fatalf("Render after Edit failed: %v", err)
	}
	if argv[1] != "-r" {
		t.Fatalf("expected -r flag, got %v", argv)
	}
}
