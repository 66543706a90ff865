package yamlConfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type conf struct {
	URL      string        `yaml:"url"`
	Splits   []int         `yaml:"splits,flow"`
	Cooldown time.Duration `yaml:"cooldown"`
}

func TestRoundTripFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "conf.yaml")
	in := &conf{URL: "http://x", Splits: []int{1, 4}, Cooldown: 2 * time.Second}
	if err := WriteConfigYaml(name, in); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "splits: [1, 4]") {
		t.Fatalf("unexpected encoding:\n%s", data)
	}
	out := &conf{}
	if err := GetConfigYaml(name, out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatal(diff)
	}
}

func TestGetConfigYamlErrors(t *testing.T) {
	if err := GetConfigYaml(filepath.Join(t.TempDir(), "missing.yaml"), &conf{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	name := filepath.Join(t.TempDir(), "unknown.yaml")
	if err := os.WriteFile(name, []byte("nope: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := GetConfigYaml(name, &conf{}); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestGetConfigYamlEmptyFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(name, nil, 0600); err != nil {
		t.Fatal(err)
	}
	out := &conf{URL: "keep"}
	if err := GetConfigYaml(name, out); err != nil {
		t.Fatal(err)
	}
	if out.URL != "keep" {
		t.Fatal("empty file must leave v untouched")
	}
}
