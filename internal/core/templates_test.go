package core

import (
	"encoding/json"
	"io"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func fixtureApp() *App {
	return &App{
		Components: []Component{
			{PascalName: "AppHeader", KebabName: "app-header", Export: "default", FilePath: "/app/components/AppHeader.vue", ChunkName: "components/app-header", Mode: ModeAll, Global: GlobalLazy},
			{PascalName: "Icon", KebabName: "icon", Export: "Icon", FilePath: "/app/components/Icon.ts", ChunkName: "components/icon", Mode: ModeAll, Global: GlobalSync},
			{PascalName: "Chart", KebabName: "chart", Export: "default", FilePath: "/app/components/Chart.server.vue", ChunkName: "components/chart-server", Mode: ModeServer, Prefetch: BoolHint(true), Preload: NumberHint(2)},
			{PascalName: "Weather", KebabName: "weather", Export: "default", FilePath: "/app/components/islands/Weather.vue", ChunkName: "components/weather", Mode: ModeAll, Island: true},
			{PascalName: "Stub", Export: "default", FilePath: "/dist/app/components/server-placeholder", ChunkName: "components/stub", Mode: ModeServer},
		},
		Pages: []Page{
			{Name: "index", File: "/app/pages/index.vue", Mode: ModeAll},
			{Name: "report", File: "/app/pages/report.server.vue", Mode: ModeServer},
			{File: "/app/pages/nameless.server.vue", Mode: ModeServer},
		},
	}
}

func fixtureOptions(islands bool) BuildOptions {
	return BuildOptions{
		BuildDir:              "/app/.nuxt",
		ComponentIslands:      islands,
		ServerPlaceholderPath: "/dist/app/components/server-placeholder",
	}
}

func render(t *testing.T, tmpl Template, app *App, opts BuildOptions) string {
	t.Helper()
	file, err := tmpl.Execute(Context{App: app, Options: opts})
	if err != nil {
		t.Fatalf("%s Execute() error = %v", tmpl.Filename, err)
	}
	if file.Filename != tmpl.Filename {
		t.Errorf("rendered filename = %q, want %q", file.Filename, tmpl.Filename)
	}
	return file.Contents
}

func TestComponentsPluginTemplate_Empty(t *testing.T) {
	apps := []*App{
		nil,
		{},
		{Components: []Component{{PascalName: "A"}, {PascalName: "B", Island: true}}},
	}

	for _, app := range apps {
		got := render(t, ComponentsPluginTemplate, app, BuildOptions{})
		if got != emptyComponentsPlugin {
			t.Errorf("plugin without globals = %q, want no-op plugin", got)
		}
	}

	want := "\nimport { defineNuxtPlugin } from '#app/nuxt'\nexport default defineNuxtPlugin({\n  name: 'nuxt:global-components',\n})\n"
	if emptyComponentsPlugin != want {
		t.Errorf("no-op plugin text changed: %q", emptyComponentsPlugin)
	}
}

func TestComponentsPluginTemplate(t *testing.T) {
	got := render(t, ComponentsPluginTemplate, fixtureApp(), fixtureOptions(true))

	wantParts := []string{
		"import { LazyAppHeader, Icon } from '#components'\n",
		"const lazyGlobalComponents = [\n  [\"AppHeader\", LazyAppHeader],\n  [\"Icon\", Icon]\n]\n",
		"nuxtApp.vueApp.component(name, component)",
		"nuxtApp.vueApp.component('Lazy' + name, component)",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("plugin output missing %q:\n%s", part, got)
		}
	}

	again := render(t, ComponentsPluginTemplate, fixtureApp(), fixtureOptions(true))
	if got != again {
		t.Error("plugin output is not deterministic")
	}

	snaps.MatchSnapshot(t, got)
}

func TestComponentsPluginTemplate_SingleBucket(t *testing.T) {
	syncOnly := &App{Components: []Component{{PascalName: "A", Global: GlobalSync}}}
	got := render(t, ComponentsPluginTemplate, syncOnly, BuildOptions{})
	if !strings.Contains(got, "const lazyGlobalComponents = [\n  [\"A\", A]\n]") {
		t.Errorf("sync-only table malformed:\n%s", got)
	}

	lazyOnly := &App{Components: []Component{{PascalName: "A", Global: GlobalLazy}, {PascalName: "B", Global: GlobalLazy}}}
	got = render(t, ComponentsPluginTemplate, lazyOnly, BuildOptions{})
	if !strings.Contains(got, "const lazyGlobalComponents = [\n  [\"A\", LazyA],\n  [\"B\", LazyB]\n]") {
		t.Errorf("lazy-only table malformed:\n%s", got)
	}
}

func TestComponentNamesTemplate(t *testing.T) {
	app := fixtureApp()
	got := render(t, ComponentNamesTemplate, app, fixtureOptions(true))

	prefix := "export const componentNames = "
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("names output = %q", got)
	}

	var names []string
	if err := json.Unmarshal([]byte(strings.TrimPrefix(got, prefix)), &names); err != nil {
		t.Fatalf("names output is not a JSON array: %v", err)
	}

	want := []string{"AppHeader", "Icon", "Chart", "Stub"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestComponentNamesTemplate_Empty(t *testing.T) {
	got := render(t, ComponentNamesTemplate, &App{}, BuildOptions{})
	if got != "export const componentNames = []" {
		t.Errorf("names output = %q", got)
	}

	onlyIslands := &App{Components: []Component{{PascalName: "A", Island: true}}}
	got = render(t, ComponentNamesTemplate, onlyIslands, BuildOptions{})
	if got != "export const componentNames = []" {
		t.Errorf("names output = %q", got)
	}
}

func TestComponentsIslandsTemplate_Disabled(t *testing.T) {
	for _, app := range []*App{nil, {}, fixtureApp()} {
		got := render(t, ComponentsIslandsTemplate, app, fixtureOptions(false))
		if got != "export const islandComponents = {}" {
			t.Errorf("disabled islands output = %q", got)
		}
	}
}

func TestComponentsIslandsTemplate(t *testing.T) {
	got := render(t, ComponentsIslandsTemplate, fixtureApp(), fixtureOptions(true))

	want := `import { defineAsyncComponent } from 'vue'
export const islandComponents = import.meta.client ? {} : {
  "Chart": defineAsyncComponent(() => import("/app/components/Chart.server.vue" /* webpackChunkName: "components/chart-server", webpackPrefetch: true, webpackPreload: 2 */).then(c => c.default || c)),
  "Weather": defineAsyncComponent(() => import("/app/components/islands/Weather.vue" /* webpackChunkName: "components/weather" */).then(c => c.default || c)),
  "Stub": defineAsyncComponent(() => import("/dist/app/components/server-placeholder" /* webpackChunkName: "components/stub" */).then(c => c.default || c)),
  "page_report": defineAsyncComponent(() => import("/app/pages/report.server.vue").then(c => c.default || c))
}`
	if got != want {
		t.Errorf("islands output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestComponentsIslandsTemplate_NamedExport(t *testing.T) {
	app := &App{Components: []Component{
		{PascalName: "Map", Export: "MapView", FilePath: "/c/Map.ts", ChunkName: "components/map", Island: true},
	}}
	got := render(t, ComponentsIslandsTemplate, app, BuildOptions{ComponentIslands: true})
	if !strings.Contains(got, ".then(c => c['MapView'])") {
		t.Errorf("named export accessor missing:\n%s", got)
	}
}

func TestIslandClassificationFollowsClientSibling(t *testing.T) {
	server := Component{PascalName: "Chart", Export: "default", FilePath: "/app/components/Chart.server.vue", ChunkName: "components/chart", Mode: ModeServer}
	client := Component{PascalName: "Chart", Export: "default", FilePath: "/app/components/Chart.client.vue", ChunkName: "components/chart", Mode: ModeClient}
	opts := fixtureOptions(true)

	alone := &App{Components: []Component{server}}
	islands := render(t, ComponentsIslandsTemplate, alone, opts)
	types := render(t, ComponentsTypeTemplate, alone, opts)
	if !strings.Contains(islands, `"Chart": defineAsyncComponent(`) {
		t.Errorf("server-only component missing from islands:\n%s", islands)
	}
	if !strings.Contains(types, `'Chart': IslandComponent<typeof import("../components/Chart.server.vue")['default']>`) {
		t.Errorf("server-only component not typed as island:\n%s", types)
	}

	paired := &App{Components: []Component{server, client}}
	islands = render(t, ComponentsIslandsTemplate, paired, opts)
	types = render(t, ComponentsTypeTemplate, paired, opts)
	if strings.Contains(islands, `"Chart"`) {
		t.Errorf("paired component should not be an island:\n%s", islands)
	}
	if strings.Contains(types, "IslandComponent<typeof") {
		t.Errorf("paired component should not be typed as island:\n%s", types)
	}
}

func TestComponentsTypeTemplate(t *testing.T) {
	got := render(t, ComponentsTypeTemplate, fixtureApp(), fixtureOptions(true))

	wantParts := []string{
		"import type { DefineComponent, SlotsType } from 'vue'\n",
		islandComponentType + "\n",
		"  hydrateOnVisible?: IntersectionObserverInit | true\n",
		"  hydrateNever?: true\n",
		"type LazyComponent<T> = (T & DefineComponent<HydrationStrategies, {}, {}, {}, {}, {}, {}, { hydrated: () => void }>)\n",
		"  'AppHeader': typeof import(\"../components/AppHeader.vue\")['default']\n",
		"  'Icon': typeof import(\"../components/Icon\")['Icon']\n",
		"  'Chart': IslandComponent<typeof import(\"../components/Chart.server.vue\")['default']>\n",
		"  'Stub': typeof import(\"../../dist/app/components/server-placeholder\")['default']\n",
		"  'LazyAppHeader': LazyComponent<typeof import(\"../components/AppHeader.vue\")['default']>\n",
		"declare module 'vue' {\n  export interface GlobalComponents extends _GlobalComponents { }\n}\n",
		"export const Icon: typeof import(\"../components/Icon\")['Icon']\n",
		"export const LazyIcon: LazyComponent<typeof import(\"../components/Icon\")['Icon']>\n",
		"\nexport const componentNames: string[]\n",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("types output missing %q", part)
		}
	}

	if strings.Contains(got, "Weather") {
		t.Error("island-flagged components must not be declared")
	}

	snaps.MatchSnapshot(t, got)
}

func TestComponentsTypeTemplate_IslandsDisabled(t *testing.T) {
	got := render(t, ComponentsTypeTemplate, &App{}, fixtureOptions(false))
	if strings.Contains(got, "type IslandComponent") {
		t.Error("IslandComponent alias emitted with islands disabled")
	}
	if !strings.HasPrefix(got, "\nimport type { DefineComponent, SlotsType } from 'vue'\n\ntype HydrationStrategies") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "interface _GlobalComponents {\n}") {
		t.Errorf("empty interface malformed:\n%s", got)
	}
}

func TestComponentsMetadataTemplate(t *testing.T) {
	app := fixtureApp()
	file, err := ComponentsMetadataTemplate.Execute(Context{App: app})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !file.Write {
		t.Error("metadata must be written to disk")
	}
	if !strings.HasPrefix(file.Contents, "[\n  {\n    \"pascalName\": \"AppHeader\"") {
		t.Errorf("metadata not indented with two spaces:\n%s", file.Contents)
	}

	var decoded []Component
	if err := json.Unmarshal([]byte(file.Contents), &decoded); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	for i := range decoded {
		decoded[i].src = nil
	}
	if !reflect.DeepEqual(decoded, app.Components) {
		t.Errorf("metadata round trip mismatch\ngot:  %+v\nwant: %+v", decoded, app.Components)
	}

	empty := render(t, ComponentsMetadataTemplate, &App{}, BuildOptions{})
	if empty != "[]" {
		t.Errorf("empty metadata = %q, want []", empty)
	}
}

func TestComponentsMetadataTemplate_KeepsRegistryFields(t *testing.T) {
	registry := `[
  {"pascalName": "A", "kebabName": "a", "export": "default", "filePath": "/a.vue", "global": false, "island": false, "priority": 0, "declarationPath": "/a.vue", "prefetch": false, "meta": {"async": true}},
  {"pascalName": "B", "filePath": "/b.vue", "mode": "server", "global": "sync", "preload": 2, "shortPath": "components/B.vue"}
]`
	app, err := ParseRegistry([]byte(registry))
	if err != nil {
		t.Fatalf("ParseRegistry() error = %v", err)
	}

	got := render(t, ComponentsMetadataTemplate, app, BuildOptions{})

	var want, decoded any
	if err := json.Unmarshal([]byte(registry), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	if !reflect.DeepEqual(decoded, want) {
		t.Errorf("metadata lost registry data\ngot:  %s\nwant: %s", got, registry)
	}
	if !strings.HasPrefix(got, "[\n  {\n    \"pascalName\": \"A\",\n    \"kebabName\": \"a\"") {
		t.Errorf("metadata does not keep registry key order:\n%s", got)
	}
}

func TestComponentsMetadataTemplate_ReflectsUpdates(t *testing.T) {
	app, err := ParseRegistry([]byte(`[{"pascalName": "A", "filePath": "/a.vue", "mode": "server", "island": true, "extra": 1}]`))
	if err != nil {
		t.Fatal(err)
	}
	app.Components[0].Mode = ""
	app.Components[0].Island = false
	app.Components[0].ChunkName = "components/a"

	got := render(t, ComponentsMetadataTemplate, app, BuildOptions{})
	want := "[\n  {\n    \"pascalName\": \"A\",\n    \"filePath\": \"/a.vue\",\n    \"mode\": \"\",\n    \"island\": false,\n    \"extra\": 1,\n    \"chunkName\": \"components/a\"\n  }\n]"
	if got != want {
		t.Errorf("metadata = %s\nwant %s", got, want)
	}
}

func TestComponentsMetadataTypeTemplate(t *testing.T) {
	stdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	got := render(t, ComponentsMetadataTypeTemplate, nil, BuildOptions{})
	os.Stdout = stdout
	w.Close()
	printed, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(printed) != 0 {
		t.Errorf("rendering printed to stdout: %q", printed)
	}

	for _, part := range []string{"interface Component", "pascalName", "filePath", "boolean | 'sync'", "export type ComponentsMetadata = Component[]"} {
		if !strings.Contains(got, part) {
			t.Errorf("metadata types missing %q:\n%s", part, got)
		}
	}
}

func TestTemplates(t *testing.T) {
	want := []string{
		"components.plugin.mjs",
		"component-names.mjs",
		"components.islands.mjs",
		"components.d.ts",
		"components.json",
		"components.meta.d.ts",
	}

	var got []string
	for _, tmpl := range Templates() {
		got = append(got, tmpl.Filename)
		if tmpl.Write != (tmpl.Filename == "components.json") {
			t.Errorf("%s Write = %v", tmpl.Filename, tmpl.Write)
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Templates() = %v, want %v", got, want)
	}
}
