package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cabledraw/pkg/dsl/dsltest"
	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/pipeline"
	"github.com/matzehuels/cabledraw/pkg/render"
	"github.com/matzehuels/cabledraw/pkg/render/worker"
)

// testCLI isolates a CLI from the host configuration and environment.
type testCLI struct {
	*CLI
	dir    string
	config string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	for _, k := range []string{"TEMPLATE_PACKS_DIR", "ASSEMBLIES_DIR", "RENDERER_SERVICE_URL", "CABLEDRAW_ADDR", "REDIS_ADDR", "MONGO_URI", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("DRAWINGS_DIR", filepath.Join(dir, "drawings"))
	return &testCLI{
		CLI:    New(io.Discard, LogInfo),
		dir:    dir,
		config: filepath.Join(dir, "config.toml"),
	}
}

func (tc *testCLI) execute(args ...string) error {
	root := tc.RootCommand()
	root.SetArgs(append([]string{"--config", tc.config}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func (tc *testCLI) writeSchema(t *testing.T, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tc.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	got := make(map[string]bool)
	for _, cmd := range root.Commands() {
		got[cmd.Name()] = true
	}
	for _, name := range []string{"assemblies", "completion", "config", "drawings", "netlist", "render", "serve", "templates", "worker"} {
		if !got[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	tc := newTestCLI(t)
	input := tc.writeSchema(t, "ribbon.json", dsltest.RibbonAssembly("RB-16", 16, 600, dsltest.Bool(true)))
	out := filepath.Join(tc.dir, "out", "ribbon.svg")

	if err := tc.execute("render", input, "-q", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("output is not SVG: %.60q", data)
	}

	stored, err := filepath.Glob(filepath.Join(tc.dir, "drawings", "RB-16", "*", "drawing.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored drawings = %v, want one", stored)
	}

	// A second render is served from the store under the same revision.
	if err := tc.execute("render", input, "-q"); err != nil {
		t.Fatalf("second render: %v", err)
	}
	again, _ := filepath.Glob(filepath.Join(tc.dir, "drawings", "RB-16", "*", "drawing.svg"))
	if diff := cmp.Diff(stored, again); diff != "" {
		t.Errorf("stored drawings changed (-first +second):\n%s", diff)
	}

	if err := tc.execute("drawings", "clear"); err != nil {
		t.Fatalf("drawings clear: %v", err)
	}
	if left, _ := filepath.Glob(filepath.Join(tc.dir, "drawings", "RB-16", "*", "drawing.svg")); len(left) != 0 {
		t.Errorf("drawings left after clear: %v", left)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tc := newTestCLI(t)
	input := tc.writeSchema(t, "power.json", dsltest.PowerAssembly("PW-3", "NA"))

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown template", []string{"render", input, "-q", "-t", "no-such-pack"}, errors.ErrCodeInvalidTemplate},
		{"bad format", []string{"render", input, "-q", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"missing file", []string{"render", filepath.Join(tc.dir, "missing.json"), "-q"}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tc.execute(tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestNetlistCommandDOT(t *testing.T) {
	tc := newTestCLI(t)
	input := tc.writeSchema(t, "power.json", dsltest.PowerAssembly("PW-4", "EU"))
	out := filepath.Join(tc.dir, "power.dot")

	if err := tc.execute("netlist", input, "--dot", "--detailed", "-o", out); err != nil {
		t.Fatalf("netlist: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"graph netlist", `"A:1" -- "B:1"`, `"A:2" -- "B:2"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

func TestConfigInit(t *testing.T) {
	tc := newTestCLI(t)

	if err := tc.execute("config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(tc.config); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if err := tc.execute("config", "init"); err == nil {
		t.Error("second init without --force succeeded")
	}
	if err := tc.execute("config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
	if err := tc.execute("config", "show"); err != nil {
		t.Errorf("config show: %v", err)
	}
}

func TestNewServicesRenderer(t *testing.T) {
	tests := []struct {
		name       string
		serviceURL string
		wantLocal  bool
	}{
		{"in-process", "", true},
		{"worker", "http://localhost:5002", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCLI(t)
			t.Setenv("RENDERER_SERVICE_URL", tt.serviceURL)

			cfg, err := tc.loadConfig()
			if err != nil {
				t.Fatal(err)
			}
			svc, err := tc.newServices(context.Background(), cfg)
			if err != nil {
				t.Fatal(err)
			}
			defer svc.Close(context.Background())

			switch r := svc.runner.Renderer.(type) {
			case *render.Local:
				if !tt.wantLocal {
					t.Error("got in-process renderer, want worker client")
				}
			case *worker.Client:
				if tt.wantLocal {
					t.Error("got worker client, want in-process renderer")
				}
				if r.BaseURL() != tt.serviceURL {
					t.Errorf("BaseURL = %q, want %q", r.BaseURL(), tt.serviceURL)
				}
			default:
				t.Errorf("unexpected renderer %T", r)
			}
			if got := rendererName(svc.runner.Renderer); (got == "local") != tt.wantLocal {
				t.Errorf("rendererName = %q", got)
			}
		})
	}
}

func TestLoadConfigLogLevel(t *testing.T) {
	tc := newTestCLI(t)
	t.Setenv("LOG_LEVEL", "ERROR")

	if _, err := tc.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if got := tc.Logger.GetLevel().String(); got != "error" {
		t.Errorf("level = %q, want error", got)
	}

	tc.SetLogLevel(LogDebug)
	if _, err := tc.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if got := tc.Logger.GetLevel(); got != LogDebug {
		t.Errorf("level = %v, want debug to win over config", got)
	}
}

func TestAssembliesPutThenRenderByID(t *testing.T) {
	tc := newTestCLI(t)
	t.Setenv("ASSEMBLIES_DIR", filepath.Join(tc.dir, "assemblies"))
	input := tc.writeSchema(t, "ribbon.json", dsltest.RibbonAssembly("RB-6", 6, 250, nil))

	if err := tc.execute("assemblies", "put", input); err != nil {
		t.Fatalf("assemblies put: %v", err)
	}
	if err := tc.execute("assemblies", "list"); err != nil {
		t.Fatalf("assemblies list: %v", err)
	}

	cfg, err := tc.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	svc, err := tc.newServices(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close(context.Background())

	resp, err := svc.runner.Execute(context.Background(), pipeline.Request{AssemblyID: "RB-6"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(resp.URL, "/drawings/RB-6/") {
		t.Errorf("URL = %q", resp.URL)
	}
}

func TestAssembliesRequiresStore(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.execute("assemblies", "list"); err == nil {
		t.Error("assemblies list without a store succeeded")
	}
}
