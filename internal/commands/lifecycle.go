package commands

// mutatingVerbs lists verbs that can change the registry document.
var mutatingVerbs = map[string]struct{}{
	"pr":  {},
	"er":  {},
	"at":  {},
	"ar":  {},
	"cmd": {},
	"rn":  {},
	"dl":  {},
	"st":  {},
	"se":  {},
	"sc":  {},
	"su":  {},
}

func init() {
	for name := range mutatingVerbs {
		meta, ok := Registry[name]
		if !ok {
			continue
		}
		meta.MutatesRegistry = true
		Registry[name] = meta
	}
}
