package core

import (
	"fmt"

	"github.com/tkrajina/typescriptify-golang-structs/typescriptify"
)

var ComponentsMetadataTemplate = Template{
	Filename: "components.json",
	Write:    true,
	Render: func(ctx Context) (string, error) {
		components := ctx.components()
		if components == nil {
			components = []Component{}
		}
		return MarshalJS(components, "  ")
	},
}

// ComponentsMetadataTypeTemplate declares the record shape of components.json.
var ComponentsMetadataTypeTemplate = Template{
	Filename: "components.meta.d.ts",
	Render: func(ctx Context) (string, error) {
		converter := typescriptify.New().
			Silent().
			WithInterface(true).
			WithBackupDir("").
			Add(Component{})

		ts, err := converter.Convert(nil)
		if err != nil {
			return "", fmt.Errorf("convert component record: %w", err)
		}
		return ts + "\nexport type ComponentsMetadata = Component[]\n", nil
	},
}
