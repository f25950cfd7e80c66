package api

// Schema describes the tool endpoints for agent registration.
func Schema() map[string]interface{} {
	tools := []map[string]interface{}{
		ts("simplify", "/simplify", "Expand, simplify and factor an expression, listing each step that changes it",
			[]string{"expression"}, map[string]string{"expression": "string"}),
		ts("solve", "/solve", "Solve a linear equation in one variable step by step",
			[]string{"equation"}, map[string]string{"equation": "string"}),
	}
	return map[string]interface{}{"tools": tools}
}

func ts(name, path, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"path":        path,
		"method":      "POST",
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":                 "object",
			"properties":           properties,
			"required":             required,
			"additionalProperties": false,
		},
	}
}
