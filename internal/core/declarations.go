package core

const islandComponentType = `type IslandComponent<T extends DefineComponent> = T & DefineComponent<{}, {refresh: () => Promise<void>}, {}, {}, {}, {}, {}, {}, {}, {}, {}, {}, SlotsType<{ fallback: { error: unknown } }>>`

const componentsTypeSource = `
import type { DefineComponent, SlotsType } from 'vue'
{{ if .Islands }}{{ .IslandType }}{{ end }}
type HydrationStrategies = {
  hydrateOnVisible?: IntersectionObserverInit | true
  hydrateOnIdle?: number | true
  hydrateOnInteraction?: keyof HTMLElementEventMap | Array<keyof HTMLElementEventMap> | true
  hydrateOnMediaQuery?: string
  hydrateAfter?: number
  hydrateWhen?: boolean
  hydrateNever?: true
}
type LazyComponent<T> = (T & DefineComponent<HydrationStrategies, {}, {}, {}, {}, {}, {}, { hydrated: () => void }>)
interface _GlobalComponents {
{{- range .Components }}
  {{ jsSQ .Name }}: {{ .Type }}
{{- end }}
{{- range .Components }}
  {{ jsSQ (lazy .Name) }}: LazyComponent<{{ .Type }}>
{{- end }}
}

declare module 'vue' {
  export interface GlobalComponents extends _GlobalComponents { }
}
{{ range .Components }}
export const {{ .Name }}: {{ .Type }}
{{- end }}
{{- range .Components }}
export const {{ lazy .Name }}: LazyComponent<{{ .Type }}>
{{- end }}

export const componentNames: string[]
`

var componentsTypeTmpl = mustParse("components-type", componentsTypeSource)

type ComponentType struct {
	Name string
	Type string
}

// ComponentTypes resolves the type expression of every non-island component.
func ComponentTypes(components []Component, opts BuildOptions) []ComponentType {
	nonIslands := NonIslands(components)
	types := make([]ComponentType, 0, len(nonIslands))
	for _, c := range nonIslands {
		imp := DynamicImport(TypeImportPath(opts.BuildDir, c.FilePath), DynamicImportOptions{NoWrapper: true})
		typ := "typeof " + imp + "[" + JSSingleQuoted(c.ExportName()) + "]"
		if IsServerOnly(c, components, opts.ServerPlaceholderPath) {
			typ = "IslandComponent<" + typ + ">"
		}
		types = append(types, ComponentType{Name: c.PascalName, Type: typ})
	}
	return types
}

var ComponentsTypeTemplate = Template{
	Filename: "components.d.ts",
	Render: func(ctx Context) (string, error) {
		return execute(componentsTypeTmpl, map[string]any{
			"Islands":    ctx.Options.ComponentIslands,
			"IslandType": islandComponentType,
			"Components": ComponentTypes(ctx.components(), ctx.Options),
		})
	},
}
