package matching

// DefaultLocationAliases maps a canonical city key to all spellings the job
// sources are known to use (latin, uzbek latin, cyrillic). A filter location
// matching any alias of a city matches every alias of that city.
func DefaultLocationAliases() map[string][]string {
	return map[string][]string{
		"tashkent":  {"tashkent", "toshkent", "ташкент", "ташкентская область"},
		"samarkand": {"samarkand", "samarqand", "самарканд"},
		"bukhara":   {"bukhara", "buxoro", "бухара"},
		"andijan":   {"andijan", "andijon", "андижан"},
		"fergana":   {"fergana", "farg'ona", "фергана"},
		"namangan":  {"namangan", "наманган"},
		"nukus":     {"nukus", "нукус"},
		"termez":    {"termez", "термез"},
		"qarshi":    {"qarshi", "karshi", "карши"},
		"gulistan":  {"gulistan", "гулистан"},
		"jizzakh":   {"jizzakh", "jizzax", "джиззах"},
		"navoiy":    {"navoiy", "navoi", "навои"},
	}
}
