package core

func ComponentNames(components []Component) []string {
	names := make([]string, 0, len(components))
	for _, c := range NonIslands(components) {
		names = append(names, c.PascalName)
	}
	return names
}

var ComponentNamesTemplate = Template{
	Filename: "component-names.mjs",
	Render: func(ctx Context) (string, error) {
		list, err := MarshalJS(ComponentNames(ctx.components()), "")
		if err != nil {
			return "", err
		}
		return "export const componentNames = " + list, nil
	},
}
