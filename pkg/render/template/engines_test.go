package template_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	rendertemplate "github.com/goliatone/go-viewloader/pkg/render/template"
)

func noopFactory(fs.FS, string) (rendertemplate.TemplateRenderer, error) {
	return nil, nil
}

func TestEngines_RegisterAndGet(t *testing.T) {
	engines := rendertemplate.NewEngines()
	engines.MustRegister("pongo", noopFactory)
	engines.MustRegister("html", noopFactory)

	if _, err := engines.Get("pongo"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := engines.Get("liquid"); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
	if diff := cmp.Diff([]string{"html", "pongo"}, engines.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestEngines_RegisterValidation(t *testing.T) {
	engines := rendertemplate.NewEngines()
	engines.MustRegister("pongo", noopFactory)

	if err := engines.Register("pongo", noopFactory); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := engines.Register(" ", noopFactory); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := engines.Register("html", nil); err == nil {
		t.Fatalf("expected nil factory error")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteAll(t *testing.T) {
	var a, b bytes.Buffer
	if err := rendertemplate.WriteAll("out", &a, nil, &b); err != nil {
		t.Fatalf("write all: %v", err)
	}
	if a.String() != "out" || b.String() != "out" {
		t.Fatalf("unexpected writer contents %q %q", a.String(), b.String())
	}

	var writers []io.Writer
	writers = append(writers, failingWriter{})
	if err := rendertemplate.WriteAll("out", writers...); err == nil {
		t.Fatalf("expected writer error")
	}
}

func TestMergeData(t *testing.T) {
	got := rendertemplate.MergeData(
		map[string]any{"a": 1, "b": 1},
		nil,
		map[string]any{"b": 2},
		"scalar",
	)

	want := map[string]any{"a": 1, "b": 2, "data": "scalar"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplatePath(t *testing.T) {
	cases := []struct {
		name string
		ext  string
		want string
	}{
		{name: "home", ext: ".tpl", want: "home.tpl"},
		{name: "partials/header", ext: ".html", want: "partials/header.html"},
		{name: "home.tpl", ext: ".tpl", want: "home.tpl"},
		{name: "resources/views/home.php", ext: ".tpl", want: "resources/views/home.php"},
		{name: "v1.2/home", ext: ".tpl", want: "v1.2/home.tpl"},
	}

	for _, tc := range cases {
		if got := rendertemplate.TemplatePath(tc.name, tc.ext); got != tc.want {
			t.Errorf("TemplatePath(%q, %q) = %q, want %q", tc.name, tc.ext, got, tc.want)
		}
	}
}
