package core

import "strings"

const emptyComponentsPlugin = `
import { defineNuxtPlugin } from '#app/nuxt'
export default defineNuxtPlugin({
  name: 'nuxt:global-components',
})
`

const componentsPluginSource = `import { defineNuxtPlugin } from '#app/nuxt'
import { {{ .Imports }} } from '#components'
const lazyGlobalComponents = [
{{- range $i, $e := .Entries }}{{ if $i }},{{ end }}
  [{{ js $e.Name }}, {{ $e.Binding }}]
{{- end }}
]

export default defineNuxtPlugin({
  name: 'nuxt:global-components',
  setup (nuxtApp) {
    for (const [name, component] of lazyGlobalComponents) {
      nuxtApp.vueApp.component(name, component)
      nuxtApp.vueApp.component('Lazy' + name, component)
    }
  }
})
`

var componentsPluginTmpl = mustParse("components-plugin", componentsPluginSource)

type GlobalRegistration struct {
	Name    string
	Binding string
}

// GlobalRegistrations lists the name/binding pairs the plugin registers:
// lazy components bound to their Lazy import, then sync components.
func GlobalRegistrations(components []Component) []GlobalRegistration {
	buckets := PartitionGlobals(components)
	entries := make([]GlobalRegistration, 0, len(buckets.Lazy)+len(buckets.Sync))
	for _, name := range buckets.Lazy {
		entries = append(entries, GlobalRegistration{Name: name, Binding: LazyName(name)})
	}
	for _, name := range buckets.Sync {
		entries = append(entries, GlobalRegistration{Name: name, Binding: name})
	}
	return entries
}

var ComponentsPluginTemplate = Template{
	Filename: "components.plugin.mjs",
	Render: func(ctx Context) (string, error) {
		entries := GlobalRegistrations(ctx.components())
		if len(entries) == 0 {
			return emptyComponentsPlugin, nil
		}

		imports := make([]string, 0, len(entries))
		for _, e := range entries {
			imports = append(imports, e.Binding)
		}

		return execute(componentsPluginTmpl, map[string]any{
			"Imports": strings.Join(imports, ", "),
			"Entries": entries,
		})
	},
}
