package core

const emptyIslandComponents = "export const islandComponents = {}"

const componentsIslandsSource = `import { defineAsyncComponent } from 'vue'
export const islandComponents = import.meta.client ? {} : {
{{- range $i, $e := . }}{{ if $i }},{{ end }}
  {{ js $e.Key }}: defineAsyncComponent({{ $e.Import }}.then(c => {{ $e.Export }}))
{{- end }}
}`

var componentsIslandsTmpl = mustParse("components-islands", componentsIslandsSource)

type islandEntry struct {
	Key    string
	Import string
	Export string
}

func exportAccessor(export string) string {
	if export == "default" {
		return "c.default || c"
	}
	return "c[" + JSSingleQuoted(export) + "]"
}

// serverPageEntries drops pages missing a name or a file.
func serverPageEntries(pages []Page) []islandEntry {
	var entries []islandEntry
	for _, p := range pages {
		if p.Mode != ModeServer || p.File == "" || p.Name == "" {
			continue
		}
		entries = append(entries, islandEntry{
			Key:    "page_" + p.Name,
			Import: DynamicImport(p.File, DynamicImportOptions{}),
			Export: exportAccessor("default"),
		})
	}
	return entries
}

var ComponentsIslandsTemplate = Template{
	Filename: "components.islands.mjs",
	Render: func(ctx Context) (string, error) {
		if !ctx.Options.ComponentIslands {
			return emptyIslandComponents, nil
		}

		var entries []islandEntry
		for _, c := range Islands(ctx.components()) {
			entries = append(entries, islandEntry{
				Key:    c.PascalName,
				Import: DynamicImport(c.FilePath, DynamicImportOptions{Comment: ImportMagicComments(c)}),
				Export: exportAccessor(c.ExportName()),
			})
		}
		entries = append(entries, serverPageEntries(ctx.pages())...)

		return execute(componentsIslandsTmpl, entries)
	},
}
